package markdown

// EncodingError reports that the input bytes could not be decoded as UTF-8.
// The convert façade translates it to common.ErrorKindEncoding.
type EncodingError string

func (e EncodingError) Error() string { return string(e) }

func errEncoding(msg string) error { return EncodingError(msg) }
