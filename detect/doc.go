// Package detect implements the annotation passes that insert discourse
// markers into a conversation model: gaps, pauses, overlaps, and speech-rate
// deviations.
//
// Every pass scans a deep copy of the model's turn map, collects the markers
// it wants to insert, and only applies them once the scan has finished
// without error. The turn map is rebuilt once per pass. A failed pass leaves
// the model as it was; earlier passes in the same run are not rolled back.
//
// # Usage
//
//	cfg := detect.DefaultConfig()
//	err := detect.Run(ctx, model,
//		detect.NewGap(cfg.Gap),
//		detect.NewPause(cfg.Pause),
//		detect.NewOverlap(),
//		detect.NewSpeechRate(cfg.SpeechRate, nil),
//	)
package detect
