package htmlreport

import (
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"

	"github.com/semdiff/semdiff/internal/pkg/differ/audiodiff"
	"github.com/semdiff/semdiff/internal/pkg/differ/binarydiff"
	"github.com/semdiff/semdiff/internal/pkg/differ/imagediff"
	"github.com/semdiff/semdiff/internal/pkg/differ/jsondiff"
	"github.com/semdiff/semdiff/internal/pkg/differ/textdiff"
)

// renderBody builds a detail page's body HTML and writes any asset files
// (images, waveforms, spectrograms) the page links to into assetsDir on fs.
// key is the entry's report path, used to derive stable, collision-free
// asset file names.
func renderBody(fs afero.Fs, assetsDir, key, tag string, d any) template.HTML {
	switch tag {
	case "json":
		if t, ok := d.(*jsondiff.Tree); ok {
			return renderJSONLines(t.Lines())
		}
	case "text":
		if t, ok := d.(*textdiff.Diff); ok {
			return renderTextLines(t.Lines())
		}
	case "image":
		if t, ok := d.(*imagediff.Diff); ok {
			return renderImage(fs, assetsDir, key, t)
		}
	case "audio":
		if t, ok := d.(*audiodiff.Diff); ok {
			return renderAudio(fs, assetsDir, key, t)
		}
	case "binary":
		if t, ok := d.(*binarydiff.Diff); ok {
			return renderBinary(t)
		}
	}
	return template.HTML("<p><em>no detail available</em></p>")
}

func renderJSONLines(lines []jsondiff.Line) template.HTML {
	var b strings.Builder
	b.WriteString("<pre>")
	for _, l := range lines {
		cls := lineClass(int(l.Tag))
		fmt.Fprintf(&b, "<span class=\"%s\">%s</span>\n", cls, html.EscapeString(l.Text))
	}
	b.WriteString("</pre>")
	return template.HTML(b.String())
}

func renderTextLines(lines []textdiff.Line) template.HTML {
	var b strings.Builder
	b.WriteString("<pre>")
	for _, l := range lines {
		cls := lineClass(int(l.Tag))
		prefix := " "
		switch cls {
		case "line-added":
			prefix = "+"
		case "line-deleted":
			prefix = "-"
		}
		fmt.Fprintf(&b, "<span class=\"%s\">%s%s</span>\n", cls, prefix, html.EscapeString(l.Text))
	}
	b.WriteString("</pre>")
	return template.HTML(b.String())
}

// lineClass maps a differ's own LineTag ordinal (Unchanged=0, Added=1,
// Deleted=2 — the same ordering in both jsondiff.LineTag and
// textdiff.LineTag) to the shared CSS classes in templates.go.
func lineClass(tag int) string {
	switch tag {
	case 1:
		return "line-added"
	case 2:
		return "line-deleted"
	default:
		return "line-unchanged"
	}
}

func renderImage(fs afero.Fs, assetsDir, key string, d *imagediff.Diff) template.HTML {
	diffName := assetName(key, "diff", "png")
	if _, err := writePNGAsset(fs, assetsDir, diffName, d.DiffImage()); err != nil {
		return template.HTML(fmt.Sprintf("<p>error writing diff image: %s</p>", html.EscapeString(err.Error())))
	}
	ew, eh := d.ExpectedSize()
	aw, ah := d.ActualSize()
	var b strings.Builder
	fmt.Fprintf(&b, "<table><tr><th>expected size</th><td>%dx%d</td></tr>", ew, eh)
	fmt.Fprintf(&b, "<tr><th>actual size</th><td>%dx%d</td></tr>", aw, ah)
	fmt.Fprintf(&b, "<tr><th>diff pixels</th><td>%d / %d (%.4f%%)</td></tr></table>", d.DiffPixels(), d.TotalPixels(), d.DiffRatio()*100)
	fmt.Fprintf(&b, `<p>diff image:</p><img src="%s" alt="pixel diff">`, html.EscapeString(diffName))
	return template.HTML(b.String())
}

func renderAudio(fs afero.Fs, assetsDir, key string, d *audiodiff.Diff) template.HTML {
	var b strings.Builder
	if d.Incomparable() {
		esr, ech := d.ExpectedMeta()
		asr, ach := d.ActualMeta()
		fmt.Fprintf(&b, "<p>incomparable: sample rate / channel count differ.</p>")
		fmt.Fprintf(&b, "<table><tr><th></th><th>sample rate</th><th>channels</th></tr>")
		fmt.Fprintf(&b, "<tr><th>expected</th><td>%d</td><td>%d</td></tr>", esr, ech)
		fmt.Fprintf(&b, "<tr><th>actual</th><td>%d</td><td>%d</td></tr></table>", asr, ach)
		return template.HTML(b.String())
	}

	fmt.Fprintf(&b, "<table><tr><th>shift samples</th><td>%d</td></tr>", d.ShiftSamples())
	fmt.Fprintf(&b, "<tr><th>loudness delta</th><td>%.3f dB</td></tr>", d.LufsDiffDB())
	fmt.Fprintf(&b, "<tr><th>spectrogram diff rate</th><td>%.4f%%</td></tr></table>", d.SpectrogramDiffRate()*100)

	for ch := 0; ch < d.Channels(); ch++ {
		waveName := assetName(key, fmt.Sprintf("wave%d", ch), "png")
		if _, err := writePNGAsset(fs, assetsDir, waveName, d.WaveformImage(ch)); err == nil {
			fmt.Fprintf(&b, "<p>channel %d waveform (expected=blue, actual=red):</p><img src=\"%s\">", ch, html.EscapeString(waveName))
		}
		expSpecName := assetName(key, fmt.Sprintf("spec%d-expected", ch), "png")
		if _, err := writePNGAsset(fs, assetsDir, expSpecName, d.SpectrogramImageExpected(ch)); err == nil {
			fmt.Fprintf(&b, "<p>channel %d expected spectrogram:</p><img src=\"%s\">", ch, html.EscapeString(expSpecName))
		}
		actSpecName := assetName(key, fmt.Sprintf("spec%d-actual", ch), "png")
		if _, err := writePNGAsset(fs, assetsDir, actSpecName, d.SpectrogramImageActual(ch)); err == nil {
			fmt.Fprintf(&b, "<p>channel %d actual spectrogram:</p><img src=\"%s\">", ch, html.EscapeString(actSpecName))
		}
	}
	return template.HTML(b.String())
}

func renderBinary(d *binarydiff.Diff) template.HTML {
	var b strings.Builder
	fmt.Fprintf(&b, "<table><tr><th>expected size</th><td>%s</td></tr>", humanize.Bytes(uint64(d.ExpectedLen())))
	fmt.Fprintf(&b, "<tr><th>actual size</th><td>%s</td></tr></table>", humanize.Bytes(uint64(d.ActualLen())))
	if !d.Rendered() {
		b.WriteString("<p><em>too large to render a byte-level diff.</em></p>")
		return template.HTML(b.String())
	}
	b.WriteString("<pre>")
	for _, r := range d.Runs() {
		cls := "line-unchanged"
		switch r.Tag {
		case binarydiff.RunAdded:
			cls = "line-added"
		case binarydiff.RunDeleted:
			cls = "line-deleted"
		}
		fmt.Fprintf(&b, "<span class=\"%s\">%s</span>", cls, html.EscapeString(fmt.Sprintf("%q", r.Bytes)))
	}
	b.WriteString("</pre>")
	return template.HTML(b.String())
}

// preview renders the short inline fragment shown in the index row — a
// one-line gist rather than the full detail body.
func preview(tag string, d any) template.HTML {
	switch tag {
	case "json":
		if t, ok := d.(*jsondiff.Tree); ok {
			return template.HTML(fmt.Sprintf("%d lines", len(t.Lines())))
		}
	case "text":
		if t, ok := d.(*textdiff.Diff); ok {
			return template.HTML(fmt.Sprintf("%d lines", len(t.Lines())))
		}
	case "image":
		if t, ok := d.(*imagediff.Diff); ok {
			return template.HTML(fmt.Sprintf("%.2f%% pixels differ", t.DiffRatio()*100))
		}
	case "audio":
		if t, ok := d.(*audiodiff.Diff); ok {
			if t.Incomparable() {
				return template.HTML("incomparable")
			}
			return template.HTML(fmt.Sprintf("%.2f dB, %.2f%% spectrogram cells", t.LufsDiffDB(), t.SpectrogramDiffRate()*100))
		}
	case "binary":
		if t, ok := d.(*binarydiff.Diff); ok {
			return template.HTML(fmt.Sprintf("%d vs %d bytes", t.ExpectedLen(), t.ActualLen()))
		}
	}
	return ""
}
