package gpu

import "testing"

func TestParseStage(t *testing.T) {
	tests := []struct {
		in      string
		want    Stage
		wantErr bool
	}{
		{"vertex", StageVertex, false},
		{"Fragment", StageFragment, false},
		{" geometry ", StageGeometry, false},
		{"tess_control", StageTessControl, false},
		{"compute", StageCompute, false},
		{"pixel", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStage(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStage(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseStage(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseCaptureMode(t *testing.T) {
	if m, err := ParseCaptureMode(""); err != nil || m != SeparateAttribs {
		t.Errorf("empty capture mode = %v, %v; want separate", m, err)
	}
	if m, err := ParseCaptureMode("interleaved"); err != nil || m != InterleavedAttribs {
		t.Errorf("interleaved capture mode = %v, %v", m, err)
	}
	if _, err := ParseCaptureMode("packed"); err == nil {
		t.Error("expected error for unknown capture mode")
	}
}

func TestDataType(t *testing.T) {
	if dt, err := ParseDataType(""); err != nil || dt != Float {
		t.Errorf("empty data type = %v, %v; want float", dt, err)
	}
	if dt, err := ParseDataType("ubyte"); err != nil || dt != UnsignedByte {
		t.Errorf("ubyte = %v, %v", dt, err)
	}
	if UnsignedByte.Size() != 1 || HalfFloat.Size() != 2 || Float.Size() != 4 {
		t.Error("unexpected component sizes")
	}
	if Stage(42).String() != "Stage(42)" {
		t.Errorf("unexpected out-of-range stage name %q", Stage(42).String())
	}
}
