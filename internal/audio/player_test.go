package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// wav builds a minimal PCM WAV file
func wav(rate uint32, channels, bits uint16, pcm []byte) []byte {
	var b bytes.Buffer
	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(36+len(pcm)))
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	binary.Write(&b, binary.LittleEndian, uint32(16))
	binary.Write(&b, binary.LittleEndian, uint16(1))
	binary.Write(&b, binary.LittleEndian, channels)
	binary.Write(&b, binary.LittleEndian, rate)
	binary.Write(&b, binary.LittleEndian, rate*uint32(channels)*uint32(bits/8))
	binary.Write(&b, binary.LittleEndian, channels*bits/8)
	binary.Write(&b, binary.LittleEndian, bits)
	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, uint32(len(pcm)))
	b.Write(pcm)
	return b.Bytes()
}

func TestDecodeWAV(t *testing.T) {
	pcm := []byte{1, 2, 3, 4}

	tests := []struct {
		name    string
		data    []byte
		want    []byte
		wantErr bool
	}{
		{name: "mono 16 bit", data: wav(22050, 1, 16, pcm), want: pcm},
		{name: "wrong rate", data: wav(44100, 1, 16, pcm), wantErr: true},
		{name: "stereo", data: wav(22050, 2, 16, pcm), wantErr: true},
		{name: "8 bit", data: wav(22050, 1, 8, pcm), wantErr: true},
		{name: "mp3", data: []byte("ID3\x03\x00\x00\x00"), wantErr: true},
		{name: "empty", data: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeWAV(tt.data, 22050)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeWAV() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !bytes.Equal(got, tt.want) {
				t.Errorf("DecodeWAV() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeWAVUnsetDataSize(t *testing.T) {
	data := wav(22050, 1, 16, []byte{9, 9})
	// espeak-ng writing to a pipe leaves 0xFFFFFFFF as data size
	binary.LittleEndian.PutUint32(data[40:44], 0xFFFFFFFF)

	got, err := DecodeWAV(data, 22050)
	if err != nil {
		t.Fatalf("DecodeWAV() error = %v", err)
	}
	if !bytes.Equal(got, []byte{9, 9}) {
		t.Errorf("DecodeWAV() = %v", got)
	}
}

func TestIsWAV(t *testing.T) {
	if !IsWAV(wav(22050, 1, 16, nil)) {
		t.Error("IsWAV() = false for a WAV header")
	}
	if IsWAV([]byte("ID3")) {
		t.Error("IsWAV() = true for MP3 data")
	}
}

func TestNewPlayer(t *testing.T) {
	for _, kind := range []string{"", "exec", "none"} {
		if _, err := NewPlayer(kind); err != nil {
			t.Errorf("NewPlayer(%q) error = %v", kind, err)
		}
	}
	if _, err := NewPlayer("vinyl"); err == nil {
		t.Error("NewPlayer(vinyl) should fail")
	}
}

func TestExecPlayerRejectsEmptyAudio(t *testing.T) {
	p := NewExecPlayer()
	if err := p.Play(nil); err == nil {
		t.Error("Play(nil) should fail")
	}
	if p.IsPlaying() {
		t.Error("IsPlaying() = true after failed Play")
	}
}
