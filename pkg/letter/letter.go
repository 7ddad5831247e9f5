// Package letter turns a report plus its template into the final document
// body. Substitution is a closed grammar: every {{token}} resolves through a
// registered resolver, falling back from stored content to a computed
// default to an empty string. The operator and the reader share one trust
// domain, so no escaping or sandboxing is applied.
package letter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ningrum77/puskesmas-bok/pkg/models"
	"github.com/ningrum77/puskesmas-bok/pkg/util"
)

var tokenPattern = regexp.MustCompile(`\{\{\s*([^{}]+?)\s*\}\}`)

// computedDefaults fill tokens the operator left empty from the report's own
// fields, formatted the way the printed letter expects them.
var computedDefaults = map[string]func(r *models.ActivityReport) string{
	"nomor_spt": func(r *models.ActivityReport) string {
		if r.SPTNumber != nil {
			return *r.SPTNumber
		}
		return ""
	},
	"tanggal_spt": func(r *models.ActivityReport) string {
		if r.SPTDate != nil {
			return util.FormatDateID(*r.SPTDate)
		}
		return ""
	},
	"tanggal_kegiatan": func(r *models.ActivityReport) string {
		return util.FormatDateID(r.Date)
	},
	"lokasi_kegiatan": func(r *models.ActivityReport) string {
		return r.Location
	},
}

// Renderer substitutes a template body for one report under a letterhead.
type Renderer struct {
	Letterhead models.LetterheadConfig
}

// Render replaces every token in the template. Layout tokens (kop_memo,
// kop_surat, tanda_tangan) expand to generated header/signature blocks;
// everything else resolves content first, computed default second, blank
// last. Stored values keep their line breaks as <br>.
func (rd *Renderer) Render(tmpl models.Template, rep models.ActivityReport) string {
	return tokenPattern.ReplaceAllStringFunc(tmpl.Body, func(match string) string {
		name := strings.TrimSpace(tokenPattern.FindStringSubmatch(match)[1])
		switch name {
		case "kop_memo":
			return rd.memoHeader(&rep)
		case "kop_surat":
			return rd.officialLetterhead()
		case "tanda_tangan":
			return rd.signatureBlock(&rep)
		}
		if val, ok := rep.Content[name]; ok && val != "" {
			return strings.ReplaceAll(val, "\n", "<br>")
		}
		if def, ok := computedDefaults[name]; ok {
			return strings.ReplaceAll(def(&rep), "\n", "<br>")
		}
		return ""
	})
}

// Tokens lists the distinct placeholder names in a template body, in order
// of first appearance. The editor uses this to lay out its input fields.
func Tokens(body string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range tokenPattern.FindAllStringSubmatch(body, -1) {
		name := strings.TrimSpace(m[1])
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

func (rd *Renderer) memoHeader(rep *models.ActivityReport) string {
	return fmt.Sprintf(`<div class="memo-header">
<table class="memo-header-table">
<tr><td>Kepada Yth</td><td>:</td><td>Kepala Dinas Kesehatan</td></tr>
<tr><td>Dari</td><td>:</td><td>Petugas %s</td></tr>
<tr><td>Tanggal</td><td>:</td><td>%s</td></tr>
<tr><td>Perihal</td><td>:</td><td>Laporan perjalanan dinas</td></tr>
</table>
</div>
<div class="memo-header-rule"></div>`, titleCase(rd.Letterhead.PuskesmasName), util.FormatDateID(rep.Date))
}

func (rd *Renderer) officialLetterhead() string {
	lh := rd.Letterhead
	var left, right string
	if lh.LogoPemkab != nil {
		left = fmt.Sprintf(`<img src="%s" class="logo-left" />`, *lh.LogoPemkab)
	}
	if lh.LogoPuskesmas != nil {
		right = fmt.Sprintf(`<img src="%s" class="logo-right" />`, *lh.LogoPuskesmas)
	}
	return fmt.Sprintf(`<div class="letterhead">
%s<div class="letterhead-center">
<p class="gov-name">%s</p>
<p class="dept-name">%s</p>
<p class="unit-name">%s</p>
<p class="address">%s</p>
<p class="contact">Telp: %s &bull; Email: %s &bull; Web: %s</p>
</div>%s
</div>
<div class="letterhead-rule"></div>`,
		left, lh.GovName, lh.DeptName, lh.PuskesmasName, lh.Address, lh.Phone, lh.Email, lh.Website, right)
}

func (rd *Renderer) signatureBlock(rep *models.ActivityReport) string {
	if len(rep.StaffNames) == 0 {
		return ""
	}
	var rows strings.Builder
	for i, name := range rep.StaffNames {
		fmt.Fprintf(&rows, `<div class="signature-row"><span>%d. %s</span><span class="signature-line"></span></div>`+"\n",
			i+1, titleCase(name))
	}
	return fmt.Sprintf(`<div class="signature-block">
<p>Pelaksana Kegiatan:</p>
%s</div>`, rows.String())
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
