package pipeline

import "path/filepath"

// resolvePath anchors a configured path to the working directory. Absolute
// paths, such as an output_dir interpolated from the workdir variable, are
// used as-is.
func resolvePath(workDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workDir, path)
}
