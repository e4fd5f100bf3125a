package core

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/0xRadioAc7iv/logcask/internal/record"
)

func buildLog(records ...[2]string) []byte {
	var log []byte
	for i, kv := range records {
		_, data := record.EncodeRecord(uint32(i+1), []byte(kv[0]), []byte(kv[1]))
		log = append(log, data...)
	}
	return log
}

func TestReplay(t *testing.T) {
	log := buildLog([2]string{"a", "1"}, [2]string{"bb", "22"}, [2]string{"a", "333"})

	kd := make(KeyDir)
	end, err := Replay(bytes.NewReader(log), int64(len(log)), 0, kd, false)
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}

	if end != int64(len(log)) {
		t.Fatalf("expected scan to end at %d, got %d", len(log), end)
	}

	want := KeyDir{
		"bb": {Timestamp: 2, Position: 14, TotalSize: 16},
		"a":  {Timestamp: 3, Position: 30, TotalSize: 16},
	}
	if !reflect.DeepEqual(kd, want) {
		t.Fatalf("got %v, want %v", kd, want)
	}
}

func TestReplayEmpty(t *testing.T) {
	kd := make(KeyDir)

	end, err := Replay(bytes.NewReader(nil), 0, 0, kd, false)
	if err != nil || end != 0 || len(kd) != 0 {
		t.Fatalf("unexpected result for empty log: end=%d err=%v keys=%d", end, err, len(kd))
	}
}

func TestReplayStopsAtPartialRecord(t *testing.T) {
	complete := buildLog([2]string{"a", "1"}, [2]string{"b", "2"})
	_, tail := record.EncodeRecord(9, []byte("partial"), []byte("value"))

	for cut := 0; cut < len(tail); cut++ {
		log := append(append([]byte(nil), complete...), tail[:cut]...)

		kd := make(KeyDir)
		end, err := Replay(bytes.NewReader(log), int64(len(log)), 0, kd, false)
		if err != nil {
			t.Fatalf("cut %d: Replay failed: %v", cut, err)
		}
		if end != int64(len(complete)) {
			t.Fatalf("cut %d: expected end %d, got %d", cut, len(complete), end)
		}
		if len(kd) != 2 {
			t.Fatalf("cut %d: expected 2 keys, got %d", cut, len(kd))
		}
	}
}

func TestReplayHugeDeclaredLength(t *testing.T) {
	log := buildLog([2]string{"a", "1"})
	log = append(log, record.EncodeHeader(1, 1<<32-1, 1<<32-1)...)

	kd := make(KeyDir)
	end, err := Replay(bytes.NewReader(log), int64(len(log)), 0, kd, false)
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}
	if end != int64(len(log)-record.HeaderSize) {
		t.Fatalf("expected scan to stop before the bogus header, got %d", end)
	}
}

func TestReplayFromOffset(t *testing.T) {
	log := buildLog([2]string{"a", "1"}, [2]string{"b", "2"}, [2]string{"c", "3"})

	kd := KeyDir{"seeded": {Timestamp: 1, Position: 0, TotalSize: 14}}
	end, err := Replay(bytes.NewReader(log), int64(len(log)), 14, kd, false)
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}
	if end != int64(len(log)) {
		t.Fatalf("expected end %d, got %d", len(log), end)
	}
	if _, ok := kd["a"]; ok {
		t.Fatalf("record before start offset was applied")
	}
	if len(kd) != 3 {
		t.Fatalf("expected seeded key plus b and c, got %v", kd)
	}
}

func TestReplayIsIdempotent(t *testing.T) {
	log := buildLog([2]string{"x", "1"}, [2]string{"y", "2"}, [2]string{"x", "3"})

	first := make(KeyDir)
	if _, err := Replay(bytes.NewReader(log), int64(len(log)), 0, first, false); err != nil {
		t.Fatal(err)
	}

	second := make(KeyDir)
	if _, err := Replay(bytes.NewReader(log), int64(len(log)), 0, second, false); err != nil {
		t.Fatal(err)
	}

	// replaying over an already populated directory changes nothing either
	if _, err := Replay(bytes.NewReader(log), int64(len(log)), 0, second, false); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("replay is not idempotent: %v vs %v", first, second)
	}
}

func TestReplayTextOnly(t *testing.T) {
	log := buildLog([2]string{"ok", "fine"})
	_, bad := record.EncodeRecord(2, []byte("bad"), []byte{0xff})
	log = append(log, bad...)

	_, err := Replay(bytes.NewReader(log), int64(len(log)), 0, make(KeyDir), true)
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}

	// a truncated invalid record is still just the end of the log
	short := log[:len(log)-1]
	kd := make(KeyDir)
	end, err := Replay(bytes.NewReader(short), int64(len(short)), 0, kd, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if end != int64(len(log)-len(bad)) || len(kd) != 1 {
		t.Fatalf("expected only the first record, got end=%d keys=%d", end, len(kd))
	}
}
