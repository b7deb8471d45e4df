package emit

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gnatfinder/gnatfinder/pkg/spike"
)

func mustPair(t *testing.T, neuron uint32, aTs, bTs int64) spike.Pair {
	t.Helper()
	p, err := spike.NewPair(spike.Spike{NeuronID: neuron, Ts: aTs}, spike.Spike{NeuronID: neuron, Ts: bTs})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func TestSink_WritesLineFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	s, err := Open(path, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pre := mustPair(t, 0, 10, 20)
	post := mustPair(t, 1, 11, 21)
	if err := s.Add(pre, post, 1.0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "0 10 20 1 11 21\n"
	if string(data) != want {
		t.Errorf("expected output %q, got %q", want, string(data))
	}
}

func TestSink_FlushesWhenBufferFull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	s, err := Open(path, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	for i := 0; i < 5; i++ {
		pre := mustPair(t, 0, int64(i), int64(i+100))
		post := mustPair(t, 1, int64(i+200), int64(i+300))
		if err := s.Add(pre, post, 1.0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if len(s.pending) >= s.bufferSize {
		t.Fatalf("expected buffer to have flushed, pending=%d bufferSize=%d", len(s.pending), s.bufferSize)
	}
}

func TestSink_EmptyOutputHasNoTrailingGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	s, err := Open(path, DefaultBufferSize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty output, got %q", string(data))
	}
}

func TestConcurrentSink_SafeForParallelAdd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	s, err := Open(path, 64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cs := NewConcurrentSink(s)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				pre := mustPair(t, 0, int64(worker*1000+i), int64(worker*1000+i+1))
				post := mustPair(t, 1, int64(worker*1000+i+2), int64(worker*1000+i+3))
				cs.Add(pre, post, 1.0)
			}
		}(w)
	}
	wg.Wait()
	if err := cs.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 400 {
		t.Fatalf("expected 400 lines, got %d", len(lines))
	}
}
