package sampleformat

import "testing"

func TestFromString(t *testing.T) {
	cases := map[string]Format{
		"int16": Int16,
		"int24": Int24,
		"float": Float32,
	}
	for s, want := range cases {
		got, err := FromString(s)
		if err != nil {
			t.Fatalf("FromString(%q): %v", s, err)
		}
		if got != want {
			t.Fatalf("FromString(%q) = %v, want %v", s, got, want)
		}
	}

	if _, err := FromString("double"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestBytesPerSample(t *testing.T) {
	cases := map[Format]uint32{Int16: 2, Int24: 3, Float32: 4}
	for f, want := range cases {
		got, err := BytesPerSample(f)
		if err != nil || got != want {
			t.Fatalf("BytesPerSample(%v) = %d, %v; want %d", f, got, err, want)
		}
	}
}

func TestDiskBytesPerSampleInt24Differs(t *testing.T) {
	mem, _ := BytesPerSample(Int24)
	disk, _ := DiskBytesPerSample(Int24)
	if mem == disk {
		t.Fatalf("expected Int24 memory (%d) and disk (%d) widths to differ", mem, disk)
	}
	if disk != 4 {
		t.Fatalf("disk width = %d, want 4", disk)
	}
}

func TestAudioFormatTag(t *testing.T) {
	if AudioFormatTag(Float32) != 3 {
		t.Fatal("expected float32 to report AudioFormat 3")
	}
	if AudioFormatTag(Int16) != 1 {
		t.Fatal("expected int16 to report AudioFormat 1")
	}
}
