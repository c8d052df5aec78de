package pipeline

import (
	"strings"
	"testing"
)

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"svg", "png", "pdf", "json", "dot"} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v, want nil", f, err)
		}
	}
	if err := ValidateFormat("gif"); err == nil {
		t.Error("ValidateFormat(\"gif\") = nil, want error")
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "json"}); err != nil {
		t.Errorf("ValidateFormats = %v, want nil", err)
	}
	err := ValidateFormats([]string{"svg", "bogus"})
	if err == nil {
		t.Fatal("ValidateFormats accepted bogus format")
	}
	if !strings.Contains(err.Error(), "bogus") {
		t.Errorf("error %q does not name the bad format", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("default formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("default scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.FontSize != DefaultFontSize {
		t.Errorf("default font size = %v, want %v", opts.FontSize, DefaultFontSize)
	}
	if opts.Logger == nil || opts.Measurer == nil {
		t.Error("runtime defaults not filled")
	}
}

func TestOptionsValidationIsIdempotent(t *testing.T) {
	opts := Options{Formats: []string{"json"}, Scale: 3}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Scale != 3 {
		t.Errorf("options changed on second call: %+v", opts)
	}
}

func TestOptionsRejectsBadValues(t *testing.T) {
	bad := Options{Formats: []string{"exe"}}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("bad format accepted")
	}
	neg := Options{Grid: -5}
	if err := neg.ValidateAndSetDefaults(); err == nil {
		t.Error("negative grid accepted")
	}
}
