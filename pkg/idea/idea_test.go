package idea

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"tableflip.dev/ideabook/pkg/errdefs"
)

func TestSettersStampModified(t *testing.T) {
	created := Now().Add(-time.Hour)
	i := New("Rocket", "Novel", "body", []string{"space"}, created)
	if i.WasModified() {
		t.Fatalf("fresh idea should not be modified")
	}
	if !i.Modified().Equal(created) {
		t.Fatalf("modified should start at created")
	}

	i.SetBody("new body")
	if !i.WasModified() {
		t.Fatalf("setter should mark the idea modified")
	}
	if i.Modified().Before(i.Created()) || !i.Modified().After(created) {
		t.Fatalf("modified %v not advanced past created %v", i.Modified(), i.Created())
	}
}

func TestTagsAreASet(t *testing.T) {
	i := New("Rocket", "Novel", "", []string{" space ", "Space", "", "boats"}, time.Time{})
	if got := i.Tags(); !reflect.DeepEqual(got, []string{"space", "boats"}) {
		t.Fatalf("unexpected tags %v", got)
	}
	if got := i.TagsCommaSeparated(); got != "space, boats" {
		t.Fatalf("unexpected joined tags %q", got)
	}
	if got := SplitTags("a,  b ,,A"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("unexpected split %v", got)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	created := time.Date(2014, 7, 26, 10, 30, 0, 0, time.Local)
	in := New("Rocket", "Novel", "line one\nline <two> & three", []string{"space", "fuel"}, created)

	data, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(data), "<created>2014/07/26 10:30:00</created>") {
		t.Fatalf("timestamp not in stored layout:\n%s", data)
	}
	if !strings.Contains(string(data), "<tags>space, fuel</tags>") {
		t.Fatalf("tags not comma joined:\n%s", data)
	}

	out, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Name() != in.Name() || out.Category() != in.Category() || out.Body() != in.Body() {
		t.Fatalf("fields differ: %+v vs %+v", out, in)
	}
	if !reflect.DeepEqual(out.Tags(), in.Tags()) {
		t.Fatalf("tags differ: %v vs %v", out.Tags(), in.Tags())
	}
	if !out.Created().Equal(created) || !out.Modified().Equal(created) {
		t.Fatalf("dates differ: %v %v", out.Created(), out.Modified())
	}
	if out.WasModified() {
		t.Fatalf("decoded idea should not be marked modified")
	}
}

func TestDecodeMalformedDateSubstitutesNow(t *testing.T) {
	doc := `<idea><content><name>Rocket</name><category>Novel</category><tags></tags>` +
		`<body>b</body><created>yesterday-ish</created><modified>2014/07/26 10:30:00</modified></content></idea>`

	before := Now()
	i, err := Decode([]byte(doc))
	if !errdefs.IsMalformedDate(err) {
		t.Fatalf("expected malformed date, got %v", err)
	}
	if i == nil {
		t.Fatalf("idea should still be returned")
	}
	if i.Created().Before(before) {
		t.Fatalf("created should be now, got %v", i.Created())
	}
	if i.Modified().Before(i.Created()) {
		t.Fatalf("modified %v precedes created %v", i.Modified(), i.Created())
	}
	if len(i.Tags()) != 0 {
		t.Fatalf("empty tag element should give no tags, got %v", i.Tags())
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode([]byte("not xml at all <")); err == nil {
		t.Fatalf("expected decode error")
	}
}
