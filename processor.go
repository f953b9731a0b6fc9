package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
)

// processPath handles a single local file or directory path.
func processPath(path string, digests DigestSet, overrides *TypeOverrides) ([]Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}

	if info.IsDir() {
		return walkDirectory(path, digests, overrides)
	}

	if !info.Mode().IsRegular() {
		logger.Debug().Str("path", path).Msg("skipping non-regular file")
		return nil, nil
	}
	return []Report{inspectPath(path, digests, overrides)}, nil
}

// inspectPath wraps inspectFile so a per-file failure becomes report data
// instead of aborting the run.
func inspectPath(path string, digests DigestSet, overrides *TypeOverrides) Report {
	report, err := inspectFile(path, digests, overrides)
	if err != nil {
		logger.Warn().Str("path", path).Err(err).Msg("could not inspect file")
		report.Err = err
	}
	return report
}

// parsePatterns splits a comma-separated string of patterns into a slice.
func parsePatterns(patterns string) []string {
	if patterns == "" {
		return nil
	}
	return strings.Split(patterns, ",")
}

// matchesAnyPattern checks if the given name matches any of the provided glob patterns.
func matchesAnyPattern(name string, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		matched, err := filepath.Match(pattern, name)
		if err != nil {
			return false, fmt.Errorf("invalid glob pattern '%s': %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// depthLimit computes the effective walk depth cutoff. Non-recursive mode is
// a cutoff at depth 1; in recursive mode --max-depth bounds the walk, with 0
// meaning unlimited.
func depthLimit() int {
	if !recursive {
		return 1
	}
	return maxDepth
}

// walkDirectory walks a directory depth-first, inspecting every regular file
// that passes the filters: hidden entries, .gitignore, depth cutoff, exclude
// patterns, and max size.
func walkDirectory(root string, digests DigestSet, overrides *TypeOverrides) ([]Report, error) {
	var reports []Report
	var ignoreMatcher gitignore.IgnoreMatcher

	parsedExcludes := parsePatterns(excludePatterns)
	limit := depthLimit()

	if !noIgnore {
		gitIgnorePath := filepath.Join(root, ".gitignore")
		if _, err := os.Stat(gitIgnorePath); err == nil {
			matcher, err := gitignore.NewGitIgnore(gitIgnorePath)
			if err != nil {
				logger.Warn().Str("path", gitIgnorePath).Err(err).Msg("could not parse .gitignore")
			} else {
				ignoreMatcher = matcher
			}
		}
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn().Str("path", path).Err(err).Msg("error accessing path")
			return nil // Report and continue
		}

		// Skip root directory itself
		if path == root {
			return nil
		}

		baseName := d.Name()
		isDir := d.IsDir()

		// 1. Hidden files/dirs
		if !showHidden && isHidden(baseName) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		// 2. .gitignore (the matcher relativizes against its own base dir)
		if ignoreMatcher != nil && ignoreMatcher.Match(path, isDir) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		// 3. Depth cutoff. Entries directly under root are at depth 1;
		// pruning directories at the limit keeps every file within it.
		relPath, _ := filepath.Rel(root, path)
		depth := countPathSeparators(relPath) + 1
		if limit > 0 && isDir && depth >= limit {
			return fs.SkipDir
		}

		// 4. Exclude patterns: prune directories, skip files.
		excluded, err := matchesAnyPattern(baseName, parsedExcludes)
		if err != nil {
			logger.Warn().Str("path", path).Err(err).Msg("error in exclude pattern matching")
		}
		if excluded {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}
		if isDir {
			return nil // Traverse into non-excluded directories
		}

		info, err := d.Info()
		if err != nil {
			logger.Warn().Str("path", path).Err(err).Msg("could not get file info")
			return nil
		}

		// Symlinks, devices, sockets and the like are not inspected.
		if !info.Mode().IsRegular() {
			logger.Debug().Str("path", path).Msg("skipping non-regular file")
			return nil
		}

		// 5. Max size
		if maxSizeBytes > 0 && info.Size() > maxSizeBytes {
			logger.Debug().Str("path", path).Int64("size", info.Size()).Msg("skipping file over max size")
			return nil
		}

		logger.Debug().Str("path", path).Msg("inspecting file")
		reports = append(reports, inspectPath(path, digests, overrides))
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", root, err)
	}

	return reports, nil
}

// isHidden checks if a base name is hidden (starts with '.').
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	baseName := filepath.Base(name)
	return len(baseName) > 0 && baseName[0] == '.'
}

// countPathSeparators counts the number of path separators in a relative path.
func countPathSeparators(path string) int {
	path = filepath.ToSlash(path)
	if path == "." || path == "" {
		return 0
	}
	return strings.Count(strings.Trim(path, "/"), "/")
}
