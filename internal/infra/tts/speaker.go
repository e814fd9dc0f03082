package tts

import (
	"log"
	"os/exec"
	"runtime"
)

// Speaker reads verdicts out loud through whatever TTS binary the host has.
// Fire-and-forget: the analysis path never waits on audio, and a broken
// audio driver can at worst produce a log line.
type Speaker struct {
	bin  string
	args []string
}

// New locates a TTS binary. Kalau tidak ada, Speak jadi no-op.
func New() *Speaker {
	candidates := [][]string{
		{"espeak"},
		{"espeak-ng"},
		{"spd-say"},
	}
	if runtime.GOOS == "darwin" {
		candidates = [][]string{{"say"}}
	}
	for _, c := range candidates {
		if path, err := exec.LookPath(c[0]); err == nil {
			return &Speaker{bin: path, args: c[1:]}
		}
	}
	log.Printf("ratemycode: no TTS binary found, voice output disabled")
	return &Speaker{}
}

func (s *Speaker) Speak(text string) {
	if s.bin == "" || text == "" {
		return
	}
	cmd := exec.Command(s.bin, append(s.args, text)...)
	if err := cmd.Start(); err != nil {
		log.Printf("ratemycode: tts start failed: %v", err)
		return
	}
	// reap the process without blocking the caller
	go func() { _ = cmd.Wait() }()
}
