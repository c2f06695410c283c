// Package imageresolve turns the raw bytes an Options.ImageResolver
// callback returns for one Image node into a packaged BinData entry: decoded,
// dimension-capped, re-encoded, and named (SPEC_FULL.md §11 domain stack).
package imageresolve

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"mime"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"hwpxmd/hwpx"
)

// maxDimension caps the longer side of a decodable image before it is
// embedded, so a resolver that hands back an oversized source photo does not
// bloat the archive (SPEC_FULL.md §11 domain stack).
const maxDimension = 2048

// Resolve packages one resolver payload as a BinData entry with binaryItemID
// id. Bytes that decode as a known raster format are re-encoded (capped,
// normalized to PNG or JPEG); bytes that do not decode are stored as-is with
// a sniffed media type, falling back to a generic octet-stream rather than
// rejecting the resolver's payload (SPEC_FULL.md §13 open question 3).
func Resolve(id int, raw []byte) hwpx.BinDataFile {
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return fallbackEntry(id, raw)
	}

	if b := img.Bounds(); b.Dx() > maxDimension || b.Dy() > maxDimension {
		if b.Dx() >= b.Dy() {
			img = imaging.Resize(img, maxDimension, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, maxDimension, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	ext := "png"
	var encErr error
	if format == "jpeg" {
		ext = "jpeg"
		encErr = imaging.Encode(&buf, img, imaging.JPEG)
	} else {
		encErr = imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression))
	}
	if encErr != nil {
		return fallbackEntry(id, raw)
	}

	return hwpx.BinDataFile{
		ID:        id,
		Name:      "image" + shortID() + "." + ext,
		MediaType: mediaTypeForExt(ext),
		Data:      buf.Bytes(),
	}
}

// fallbackEntry handles resolver payloads that aren't a format the stdlib
// image decoders (plus x/image's bmp/webp) recognize: fonts, SVGs, anything
// opaque. Content is sniffed for a best-effort extension and media type.
func fallbackEntry(id int, raw []byte) hwpx.BinDataFile {
	ext := "bin"
	mediaType := "application/octet-stream"

	if kind, err := filetype.Match(raw); err == nil && kind != filetype.Unknown && kind.Extension != "" {
		ext = kind.Extension
		if guessed := mediaTypeForExt(ext); guessed != "" {
			mediaType = guessed
		}
	}

	return hwpx.BinDataFile{
		ID:        id,
		Name:      "image" + shortID() + "." + ext,
		MediaType: mediaType,
		Data:      raw,
	}
}

func mediaTypeForExt(ext string) string {
	if t := mime.TypeByExtension("." + ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

// shortID gives each BinData filename a short, human-scannable disambiguator
// (SPEC_FULL.md §13 open question 3: "image{uuid-hex-prefix}.{ext}").
func shortID() string {
	return uuid.NewString()[:8]
}
