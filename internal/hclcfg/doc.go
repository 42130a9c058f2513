// Package hclcfg loads the optional HCL pipeline file. The file is an
// override mechanism only: the pipeline always starts from the built-in
// defaults, and a missing file is not an error.
package hclcfg
