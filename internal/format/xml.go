package format

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strings"

	"copytree/internal/record"
)

// XMLFormatter renders the `ct:` namespaced XML document (spec.md §4.H).
// Token writing is done by hand rather than via a single xml.Marshal call
// so that binary payloads can be wrapped in CDATA — encoding/xml has no
// native CDATA support, and no ecosystem streaming-XML writer surfaced in
// the retrieved corpus (see DESIGN.md).
type XMLFormatter struct{}

func (XMLFormatter) Name() string { return "xml" }

func (XMLFormatter) Format(meta Metadata, recs []record.FileRecord, opts Options) (string, error) {
	var b strings.Builder

	b.WriteString(xml.Header)
	b.WriteString(`<ct:copytree xmlns:ct="https://copytree.dev/ns/1">` + "\n")

	b.WriteString("  <ct:metadata>\n")
	writeXMLElem(&b, "    ", "generated_at", meta.GeneratedAt.Format(timeLayout))
	writeXMLElem(&b, "    ", "file_count", fmt.Sprintf("%d", meta.FileCount))
	writeXMLElem(&b, "    ", "total_size", fmt.Sprintf("%d", meta.TotalSize))
	writeXMLElem(&b, "    ", "base_path", meta.BasePath)
	if meta.Instructions != "" {
		writeXMLElem(&b, "    ", "instructions", meta.Instructions)
	}
	b.WriteString("  </ct:metadata>\n")

	b.WriteString("  <ct:tree><![CDATA[\n")
	b.WriteString(meta.DirectoryStructure)
	b.WriteString("\n]]></ct:tree>\n")

	b.WriteString("  <ct:files>\n")
	if !opts.OnlyTree {
		for _, rec := range recs {
			writeXMLFile(&b, rec, opts)
		}
	}
	b.WriteString("  </ct:files>\n")

	b.WriteString("</ct:copytree>\n")
	return b.String(), nil
}

func writeXMLElem(b *strings.Builder, indent, name, value string) {
	var escaped strings.Builder
	_ = xml.EscapeText(&escaped, []byte(value))
	fmt.Fprintf(b, "%s<ct:%s>%s</ct:%s>\n", indent, name, escaped.String(), name)
}

// xmlAttr escapes v for use as a double-quoted XML attribute value.
// xml.EscapeText, unlike fmt's %q, escapes XML's reserved characters
// (&, <, >, ', ") rather than Go-quoting them, so a path containing e.g.
// "&" still produces well-formed XML.
func xmlAttr(v string) string {
	var escaped strings.Builder
	_ = xml.EscapeText(&escaped, []byte(v))
	return escaped.String()
}

func writeXMLFile(b *strings.Builder, rec record.FileRecord, opts Options) {
	var modified string
	if !rec.Modified.IsZero() {
		modified = rec.Modified.Format(timeLayout)
	}

	fmt.Fprintf(b, "    <ct:file path=\"%s\" size=\"%s\" modified=\"%s\" encoding=\"%s\" transformed_by=\"%s\">\n",
		xmlAttr(rec.Path), xmlAttr(fmt.Sprintf("%d", rec.Size)), xmlAttr(modified), xmlAttr(string(rec.Encoding)), xmlAttr(transformedBy(rec)))

	body := contentString(rec)
	if opts.WithLineNumbers && rec.Content.Kind == record.ContentText && rec.Encoding == record.EncodingUTF8 {
		body = withLineNumbers(body)
	}

	if rec.Encoding == record.EncodingBase64 {
		// body is already base64 text produced by the loader; writing it
		// straight into the CDATA section, not re-encoding it.
		b.WriteString("      <ct:content><![CDATA[\n")
		b.WriteString(body)
		b.WriteString("\n]]></ct:content>\n")
	} else if rec.Encoding == record.EncodingBinary && rec.Content.Kind == record.ContentBytes {
		b.WriteString("      <ct:content><![CDATA[\n")
		b.WriteString(base64.StdEncoding.EncodeToString(rec.Content.Bytes))
		b.WriteString("\n]]></ct:content>\n")
	} else {
		b.WriteString("      <ct:content>")
		var escaped strings.Builder
		_ = xml.EscapeText(&escaped, []byte(body))
		b.WriteString(escaped.String())
		b.WriteString("</ct:content>\n")
	}

	b.WriteString("    </ct:file>\n")
}

const timeLayout = "2006-01-02T15:04:05Z07:00"
