package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"
)

// Player makes audio audible. Play starts playback and returns without
// waiting for it to finish; Stop halts whatever is playing.
type Player interface {
	Play(audio []byte) error
	Stop()
	IsPlaying() bool
}

// NewPlayer creates the player named by kind: "exec", "oto" or "none".
func NewPlayer(kind string) (Player, error) {
	switch kind {
	case "", "exec":
		return NewExecPlayer(), nil
	case "oto":
		return NewOtoPlayer(DefaultOtoSampleRate, NewExecPlayer())
	case "none":
		return NopPlayer{}, nil
	default:
		return nil, fmt.Errorf("unknown audio player: %s", kind)
	}
}

// IsWAV reports whether data starts with a RIFF/WAVE header.
func IsWAV(data []byte) bool {
	return len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WAVE"
}

// ExecPlayer plays audio through an external command line player.
type ExecPlayer struct {
	mu      sync.Mutex
	cmd     *exec.Cmd
	tmpFile string
	lookup  func(string) (string, error)
}

// NewExecPlayer creates a player using the first available system player
func NewExecPlayer() *ExecPlayer {
	return &ExecPlayer{lookup: exec.LookPath}
}

// Play writes the audio to a temp file and starts the system player on it
func (p *ExecPlayer) Play(audio []byte) error {
	if len(audio) == 0 {
		return errors.New("audio data is empty")
	}

	p.Stop()

	ext := ".mp3"
	if IsWAV(audio) {
		ext = ".wav"
	}
	tmp, err := os.CreateTemp("", "svenska-*"+ext)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(audio); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	tmp.Close()

	cmd, err := p.command(tmp.Name())
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := cmd.Start(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to start audio player: %w", err)
	}

	p.mu.Lock()
	p.cmd = cmd
	p.tmpFile = tmp.Name()
	p.mu.Unlock()

	go func() {
		err := cmd.Wait()
		p.mu.Lock()
		if p.cmd == cmd {
			p.cmd = nil
			p.tmpFile = ""
		}
		p.mu.Unlock()
		os.Remove(tmp.Name())
		if err != nil {
			log.Debug("audio player exited", "err", err)
		}
	}()

	return nil
}

// command picks a platform-specific player
func (p *ExecPlayer) command(file string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("afplay", file), nil
	case "linux":
		// mpg123 first since it handles MP3 files best
		if _, err := p.lookup("mpg123"); err == nil {
			return exec.Command("mpg123", "-q", file), nil
		} else if _, err := p.lookup("ffplay"); err == nil {
			return exec.Command("ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", file), nil
		} else if _, err := p.lookup("play"); err == nil {
			return exec.Command("play", "-q", file), nil
		} else if _, err := p.lookup("paplay"); err == nil {
			return exec.Command("paplay", file), nil
		} else if _, err := p.lookup("aplay"); err == nil {
			return exec.Command("aplay", "-q", file), nil
		}
		return nil, fmt.Errorf("no audio player found. Install mpg123, ffplay, sox, paplay, or aplay")
	case "windows":
		return exec.Command("cmd", "/c", "start", "/min", file), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// Stop kills the running player process, if any
func (p *ExecPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cmd != nil && p.cmd.Process != nil {
		p.cmd.Process.Kill()
	}
	p.cmd = nil
	p.tmpFile = ""
}

// IsPlaying reports whether a player process is running
func (p *ExecPlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cmd != nil
}

// DefaultOtoSampleRate matches the espeak-ng output.
const DefaultOtoSampleRate = 22050

// OtoPlayer plays 16-bit PCM WAV audio in-process through oto. Anything
// else goes to the fallback player.
type OtoPlayer struct {
	context    *oto.Context
	sampleRate int
	fallback   Player

	mu     sync.Mutex
	player *oto.Player
	// Keeps the PCM buffer alive while oto reads from it
	pcm []byte
}

// NewOtoPlayer creates the oto context. Only one context may exist per
// process.
func NewOtoPlayer(sampleRate int, fallback Player) (*OtoPlayer, error) {
	if fallback == nil {
		fallback = NopPlayer{}
	}
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   100 * time.Millisecond,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	return &OtoPlayer{context: ctx, sampleRate: sampleRate, fallback: fallback}, nil
}

// Play starts playback of a WAV buffer
func (p *OtoPlayer) Play(audio []byte) error {
	p.Stop()

	pcm, err := DecodeWAV(audio, p.sampleRate)
	if err != nil {
		log.Debug("oto cannot play audio, using fallback player", "err", err)
		return p.fallback.Play(audio)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.pcm = pcm
	p.player = p.context.NewPlayer(bytes.NewReader(pcm))
	p.player.Play()
	return nil
}

// Stop halts in-process and fallback playback
func (p *OtoPlayer) Stop() {
	p.mu.Lock()
	if p.player != nil {
		p.player.Pause()
		p.player.Close()
		p.player = nil
		p.pcm = nil
	}
	p.mu.Unlock()
	p.fallback.Stop()
}

// IsPlaying reports whether either player is playing
func (p *OtoPlayer) IsPlaying() bool {
	p.mu.Lock()
	playing := p.player != nil && p.player.IsPlaying()
	p.mu.Unlock()
	return playing || p.fallback.IsPlaying()
}

// DecodeWAV returns the PCM payload of a mono 16-bit WAV file recorded at
// sampleRate.
func DecodeWAV(data []byte, sampleRate int) ([]byte, error) {
	if !IsWAV(data) {
		return nil, errors.New("not a WAV file")
	}

	var haveFormat bool
	for off := 12; off+8 <= len(data); {
		id := string(data[off : off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		body := off + 8
		if size < 0 || body+size > len(data) {
			// espeak-ng leaves the data size unset when writing to a pipe
			if id == "data" && haveFormat {
				return data[body:], nil
			}
			return nil, errors.New("truncated WAV chunk")
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, errors.New("short WAV format chunk")
			}
			format := binary.LittleEndian.Uint16(data[body:])
			channels := binary.LittleEndian.Uint16(data[body+2:])
			rate := binary.LittleEndian.Uint32(data[body+4:])
			bits := binary.LittleEndian.Uint16(data[body+14:])
			if format != 1 || channels != 1 || bits != 16 {
				return nil, fmt.Errorf("unsupported WAV format (format %d, %d channels, %d bits)", format, channels, bits)
			}
			if int(rate) != sampleRate {
				return nil, fmt.Errorf("WAV sample rate %d does not match %d", rate, sampleRate)
			}
			haveFormat = true
		case "data":
			if !haveFormat {
				return nil, errors.New("WAV data before format chunk")
			}
			return data[body : body+size], nil
		}

		// Chunks are word aligned
		off = body + size + size%2
	}
	return nil, errors.New("WAV file has no data chunk")
}

// NopPlayer discards audio.
type NopPlayer struct{}

func (NopPlayer) Play([]byte) error { return nil }
func (NopPlayer) Stop()             {}
func (NopPlayer) IsPlaying() bool   { return false }
