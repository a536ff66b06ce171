// Package datafile loads and saves a single structured record to a JSON text file.
//
// A record type is described by a Codec, which knows the record's default
// value and how to encode and decode it. On first use the default is written
// to disk, so an operator always finds a complete file to edit.
//
// # Usage
//
//	codec := datafile.JSON(serverconfig.Default)
//
//	cfg, err := datafile.Load(ctx, codec, "/etc/server/config.json", false)
//	if err != nil {
//	    return err
//	}
//
//	cfg.Port = 8081
//	if err := datafile.Save(ctx, codec, cfg, "/etc/server/config.json"); err != nil {
//	    return err
//	}
//
// The File handle binds a path and codec once and adds logging, file mode
// and directory creation options, plus Watch for reloading on change.
//
// # Comments
//
// Configuration management tools like to prepend "# Ansible managed" style
// headers. Any line whose first character is '#' is dropped before decoding.
// A '#' anywhere else on a line is ordinary content. Files are always written
// without comments.
//
// # First run
//
// Load with failOnMissing set returns ErrNoFileFoundCreatedDefault after it
// has written the default file. This is a successful side effect reported as
// an error so that a server can stop and let the operator review the fresh
// file before running for real.
//
// # Durability
//
// Save truncates and rewrites in place. There is no temp-file-and-rename and
// no locking: concurrent writers race and a crash mid-write can leave a
// partial file.
//
// # Version
//
// Current version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package datafile
