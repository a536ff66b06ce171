package datafile

// Version is the current version of the datafile module.
const Version = "1.0.0"
