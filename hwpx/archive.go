package hwpx

import (
	"archive/zip"
	"bytes"

	fixzip "github.com/hidez8891/zip"
)

// assemble writes parts, in order, into a ZIP archive built entirely in
// memory (SPEC_FULL.md §5 "no temporary files"). mimetype is always stored
// uncompressed; every other member may be deflated.
func assemble(parts []part) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, p := range parts {
		method := zip.Deflate
		if p.store {
			method = zip.Store
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   p.name,
			Method: method,
		})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(p.data); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// normalizeArchive strips the data-descriptor flag from every entry written
// by archive/zip, so the result is byte-reproducible and friendly to strict
// OWPML readers that reject streamed (data-descriptor) entries. Done
// entirely in memory: no temporary file touches disk.
func normalizeArchive(data []byte) ([]byte, error) {
	r, err := fixzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	w := fixzip.NewWriter(&out)

	for _, file := range r.File {
		file.Flags &= ^fixzip.FlagDataDescriptor
		if err := w.CopyFile(file); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
