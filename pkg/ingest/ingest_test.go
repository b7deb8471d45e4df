package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnatfinder/gnatfinder/pkg/core"
)

func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return path
}

func TestLoadSpikes_ParsesHexTimestampsPerNeuron(t *testing.T) {
	path := writeTemp(t, "spikes.txt", "0 0A 0\n0 14 0\n0 0B 1\n0 15 1\n")
	r, err := LoadSpikes(path, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.NSpikes() != 4 {
		t.Fatalf("expected 4 spikes, got %d", r.NSpikes())
	}
	got0 := r.Spikes(0)
	if len(got0) != 2 || got0[0].Ts != 10 || got0[1].Ts != 20 {
		t.Fatalf("unexpected neuron 0 spikes: %+v", got0)
	}
	got1 := r.Spikes(1)
	if len(got1) != 2 || got1[0].Ts != 11 || got1[1].Ts != 21 {
		t.Fatalf("unexpected neuron 1 spikes: %+v", got1)
	}
}

func TestLoadSpikes_BlankLinesIgnored(t *testing.T) {
	path := writeTemp(t, "spikes.txt", "0 0A 0\n\n   \n0 14 0\n")
	r, err := LoadSpikes(path, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.NSpikes() != 2 {
		t.Fatalf("expected 2 spikes, got %d", r.NSpikes())
	}
}

func TestLoadSpikes_RejectsMalformedHex(t *testing.T) {
	path := writeTemp(t, "spikes.txt", "0 ZZ 0\n")
	if _, err := LoadSpikes(path, 1); !errors.Is(err, core.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestLoadSpikes_RejectsOutOfBoundsNeuron(t *testing.T) {
	path := writeTemp(t, "spikes.txt", "0 0A 5\n")
	if _, err := LoadSpikes(path, 1); !errors.Is(err, core.ErrNeuronOutOfBounds) {
		t.Fatalf("expected ErrNeuronOutOfBounds, got %v", err)
	}
}

func TestLoadSpikes_MissingFile(t *testing.T) {
	if _, err := LoadSpikes(filepath.Join(t.TempDir(), "missing.txt"), 1); !errors.Is(err, core.ErrInputOpen) {
		t.Fatalf("expected ErrInputOpen, got %v", err)
	}
}

func TestLoadNetwork_ParsesSynapseIntoPresynapticList(t *testing.T) {
	path := writeTemp(t, "net.txt", "0 1 1.0 1.0\n")
	n, err := LoadNetwork(path, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	presyn := n.Presynaptic(1)
	if len(presyn) != 1 || presyn[0].Src != 0 || presyn[0].Tgt != 1 {
		t.Fatalf("unexpected presynaptic list: %+v", presyn)
	}
}

func TestLoadNetwork_RejectsNonPositiveWeight(t *testing.T) {
	path := writeTemp(t, "net.txt", "0 1 0.0 1.0\n")
	if _, err := LoadNetwork(path, 2); !errors.Is(err, core.ErrNonPositiveWeight) {
		t.Fatalf("expected ErrNonPositiveWeight, got %v", err)
	}
}

func TestLoadNetwork_RejectsOutOfBoundsTarget(t *testing.T) {
	path := writeTemp(t, "net.txt", "0 5 1.0 1.0\n")
	if _, err := LoadNetwork(path, 2); !errors.Is(err, core.ErrNeuronOutOfBounds) {
		t.Fatalf("expected ErrNeuronOutOfBounds, got %v", err)
	}
}
