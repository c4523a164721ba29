package media

// Fallback values applied when the external extractor omits a metadata field.
const (
	UnknownTitle    = "Unknown Title"
	UnknownUploader = "Unknown Uploader"
)

// VideoMetadata describes a source video as reported by the metadata probe.
// Values are immutable once produced; missing fields carry the documented
// fallbacks rather than empty strings (except Thumbnail, which may be empty).
type VideoMetadata struct {
	Title           string
	Uploader        string
	DurationSeconds int
	ThumbnailURL    string
}
