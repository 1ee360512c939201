package model

// MetadataErr reports a commit metadata file which cannot be parsed
type MetadataErr struct {
	msg string
}

func (e MetadataErr) Error() string {
	return e.msg
}
