package lang

import (
	"testing"
)

// fixedRefiner always answers with the configured tag
type fixedRefiner struct {
	tag   Tag
	ok    bool
	calls int
}

func (f *fixedRefiner) Refine(text string) (Tag, bool) {
	f.calls++
	return f.tag, f.ok
}

func (f *fixedRefiner) Name() string {
	return "fixed"
}

func TestDetect_Script(t *testing.T) {
	d := NewDetector(nil, 0, nil)

	tests := []struct {
		name string
		text string
		want Tag
	}{
		{"empty", "", EN},
		{"whitespace", " \t\n ", EN},
		{"english word", "Hello", EN},
		{"english sentence", "How are you doing today?", EN},
		{"digits and punctuation", "12345 !?", EN},
		{"persian word", "سلام", FA},
		{"persian sentence", "حال شما چطور است؟", FA},
		{"persian with persian digits", "من ۲۵ سال دارم", FA},
		{"persian specific letters", "پچژگ", FA},
		{"mixed without refiner", "Hello سلام", FA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Detect(tt.text); got != tt.want {
				t.Errorf("Detect(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetect_RefinerOnlyForMixedText(t *testing.T) {
	refiner := &fixedRefiner{tag: EN, ok: true}
	d := NewDetector(refiner, 5, nil)

	if got := d.Detect("This is plain English text"); got != EN {
		t.Errorf("Expected EN, got %s", got)
	}
	if got := d.Detect("این یک متن فارسی است"); got != FA {
		t.Errorf("Expected FA for pure Persian even though refiner says EN, got %s", got)
	}
	if refiner.calls != 0 {
		t.Errorf("Expected refiner not to be consulted for single-script text, got %d calls", refiner.calls)
	}

	if got := d.Detect("I said سلام to my friend"); got != EN {
		t.Errorf("Expected refiner answer EN for mixed text, got %s", got)
	}
	if refiner.calls != 1 {
		t.Errorf("Expected 1 refiner call, got %d", refiner.calls)
	}
}

func TestDetect_RefinerSkippedForShortText(t *testing.T) {
	refiner := &fixedRefiner{tag: EN, ok: true}
	d := NewDetector(refiner, 10, nil)

	if got := d.Detect("hi سلام"); got != FA {
		t.Errorf("Expected script fallback FA for short mixed text, got %s", got)
	}
	if refiner.calls != 0 {
		t.Errorf("Expected refiner not to be called, got %d calls", refiner.calls)
	}
}

func TestDetect_RefinerUnsure(t *testing.T) {
	refiner := &fixedRefiner{ok: false}
	d := NewDetector(refiner, 1, nil)

	if got := d.Detect("mixed متن text"); got != FA {
		t.Errorf("Expected FA when refiner is unsure, got %s", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Tag
		wantErr bool
	}{
		{"en", EN, false},
		{"English", EN, false},
		{" fa ", FA, false},
		{"Persian", FA, false},
		{"farsi", FA, false},
		{"de", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestTagName(t *testing.T) {
	if EN.Name() != "English" {
		t.Errorf("Expected English, got %s", EN.Name())
	}
	if FA.Name() != "Persian" {
		t.Errorf("Expected Persian, got %s", FA.Name())
	}
}

func TestNewRefiner(t *testing.T) {
	tests := []struct {
		name     string
		wantNil  bool
		wantErr  bool
		wantName string
	}{
		{"none", true, false, ""},
		{"", true, false, ""},
		{"whatlanggo", false, false, "whatlanggo"},
		{"lingua", false, false, "lingua"},
		{"cld3", true, true, ""},
	}

	for _, tt := range tests {
		t.Run("refiner_"+tt.name, func(t *testing.T) {
			r, err := NewRefiner(tt.name, 0.5)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewRefiner(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if (r == nil) != tt.wantNil {
				t.Fatalf("NewRefiner(%q) = %v, wantNil %v", tt.name, r, tt.wantNil)
			}
			if r != nil && r.Name() != tt.wantName {
				t.Errorf("Name() = %s, want %s", r.Name(), tt.wantName)
			}
		})
	}
}

func TestWhatlangRefiner(t *testing.T) {
	r := NewWhatlangRefiner(0)

	tag, ok := r.Refine("The weather is really nice today and I want to go outside for a long walk")
	if !ok || tag != EN {
		t.Errorf("Expected EN, got %s (ok=%v)", tag, ok)
	}

	tag, ok = r.Refine("امروز هوا خیلی خوب است و من می خواهم برای پیاده روی بیرون بروم")
	if !ok || tag != FA {
		t.Errorf("Expected FA, got %s (ok=%v)", tag, ok)
	}
}
