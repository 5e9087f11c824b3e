package prompts

const (
	// TranscribeHint primes Whisper with interview vocabulary. Whisper
	// treats the prompt as preceding transcript, so it is written as text a
	// speaker might say rather than as an instruction.
	TranscribeHint = "A coding interview question about arrays, linked lists, hash maps, binary trees, graphs, dynamic programming and Big-O complexity."
	// TranscribeFallback is the looser retry whose answer goes through the
	// transcript normalizer.
	TranscribeFallback = "Please transcribe the audio in this recording."
)
