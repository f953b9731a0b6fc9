package main

// Report holds the metadata gathered for a single file.
type Report struct {
	Path          string
	Size          int64
	FormattedSize string
	MIMEType      string
	Encoding      string
	SHA256        string // Populated when --sha is set
	MD5           string // Populated when --md5 is set
	BLAKE2b       string // Populated when --blake2 is set
	Err           error  // Stores any error encountered while inspecting this file
}

// Summary holds aggregated information about a finished run.
type Summary struct {
	TotalFiles int
	TotalSize  int64
	Failed     int
}

// summarize aggregates the collected reports. failedPaths counts inputs that
// could not be processed at all (bad glob, unreadable directory) and is added
// to the per-file failures.
func summarize(reports []Report, failedPaths int) Summary {
	summary := Summary{Failed: failedPaths}
	for _, report := range reports {
		if report.Err != nil {
			summary.Failed++
			continue
		}
		summary.TotalFiles++
		summary.TotalSize += report.Size
	}
	return summary
}
