// Package whisper wraps an offline speech recognizer CLI plus the ffmpeg
// invocations that prepare its input. Long audio is fed to the recognizer
// one fixed-length chunk at a time; each chunk is first extracted as a mono
// 16kHz WAV, which is what the recognizer expects.
package whisper
