// Package logtail reads the end of the launcher log for the activity view.
//
// Read extracts the last N lines of a file with a ring buffer: one sequential
// pass, O(N) memory, lines returned oldest first. A missing file yields no
// lines and no error, since the log is created lazily.
//
// ReadEntries decodes the zap JSON records written by the logging package
// into Entry values (time, level, message, remaining fields). Lines that are
// not JSON are kept as plain messages so nothing in the file is hidden.
//
//	entries, err := logtail.ReadEntries(cfg.LogPath(), 200)
//	if err != nil {
//		return err
//	}
//	for _, e := range entries {
//		fmt.Println(e.Level, e.Message, e.Summary())
//	}
package logtail
