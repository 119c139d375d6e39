// Command scribe downloads videos, transcribes their audio, and maintains
// a searchable local archive of the transcripts.
package main
