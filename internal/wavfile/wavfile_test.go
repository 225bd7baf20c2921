package wavfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/wav"
)

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "take.wav")
	samples := []float32{0.0, 0.5, -0.5, 1.0, -1.0}

	if err := Save(path, samples, 16000); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if got := int(dec.SampleRate); got != 16000 {
		t.Errorf("expected sample rate 16000, got %d", got)
	}
	if got := int(dec.NumChans); got != 1 {
		t.Errorf("expected mono, got %d channels", got)
	}
	if len(buf.Data) != len(samples) {
		t.Fatalf("expected %d samples, got %d", len(samples), len(buf.Data))
	}
	if buf.Data[1] != 16383 { // 0.5 * 32767, truncated
		t.Errorf("expected sample 1 to be 16383, got %d", buf.Data[1])
	}
	if buf.Data[3] != 32767 {
		t.Errorf("expected full-scale sample to be 32767, got %d", buf.Data[3])
	}
}

func TestFloatsToIntsClamps(t *testing.T) {
	got := floatsToInts([]float32{2.0, -2.0})
	if got[0] != 32767 {
		t.Errorf("expected clamp to 32767, got %d", got[0])
	}
	if got[1] != -32767 {
		t.Errorf("expected clamp to -32767, got %d", got[1])
	}
}

func TestDuration(t *testing.T) {
	if d := Duration(make([]float32, 16000), 16000); d != time.Second {
		t.Errorf("expected 1s, got %s", d)
	}
	if d := Duration(nil, 0); d != 0 {
		t.Errorf("expected 0 for zero rate, got %s", d)
	}
}
