// Package ytdlp wraps yt-dlp CLI interactions.
//
// Two invocation modes are used: a metadata dump (-J) that resolves a source
// URL to title/uploader/duration without downloading media, and an audio
// extraction (-x) that downloads the best audio-only stream and transcodes it
// to a requested format and quality. Playlist expansion is disabled in both
// modes so a playlist URL resolves to its primary video.
package ytdlp
