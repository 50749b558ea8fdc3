// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comicinfo

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
)

// RootElement is the document element name fixed by the schema.
const RootElement = "ComicInfo"

// xmlHeader is written before the root element.
const xmlHeader = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

// # Field Table

// Field binds one schema element to the record. Value reports false when the
// element must be omitted.
type Field struct {
	Element string
	Value   func(info ComicInfo) (string, bool)
}

// Fields lists the schema elements in document order.
var Fields = []Field{
	{Element: "Title", Value: func(info ComicInfo) (string, bool) { return info.Title, true }},
	{Element: "Year", Value: func(info ComicInfo) (string, bool) { return strconv.FormatInt(int64(info.Year), 10), true }},
	{Element: "Month", Value: func(info ComicInfo) (string, bool) { return strconv.FormatUint(uint64(info.Month), 10), true }},
	{Element: "Day", Value: func(info ComicInfo) (string, bool) { return strconv.FormatUint(uint64(info.Day), 10), true }},
	{Element: "Writer", Value: func(info ComicInfo) (string, bool) { return optional(info.Writer) }},
	{Element: "Translator", Value: func(info ComicInfo) (string, bool) { return optional(info.Translator) }},
	{Element: "Publisher", Value: func(info ComicInfo) (string, bool) { return optional(info.Publisher) }},
	{Element: "Genre", Value: func(info ComicInfo) (string, bool) { return optional(info.Genre) }},
	{Element: "Tags", Value: func(info ComicInfo) (string, bool) { return optional(info.Tags) }},
	{Element: "Web", Value: func(info ComicInfo) (string, bool) { return info.Web, true }},
}

func optional(value *string) (string, bool) {
	if value == nil {
		return "", false
	}
	return *value, true
}

// # Encoding

// MarshalXML writes the record through the [Fields] table.
func (info ComicInfo) MarshalXML(encoder *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Local: RootElement}}
	if err := encoder.EncodeToken(start); err != nil {
		return err
	}

	for _, field := range Fields {
		value, present := field.Value(info)
		if !present {
			continue
		}
		if err := encoder.EncodeElement(value, xml.StartElement{Name: xml.Name{Local: field.Element}}); err != nil {
			return fmt.Errorf("comicinfo: encode %s: %w", field.Element, err)
		}
	}

	return encoder.EncodeToken(start.End())
}

/*
Encode renders a complete ComicInfo.xml document.

The output carries the XML declaration, two-space indentation and a
trailing newline.
*/
func Encode(info ComicInfo) ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteString(xmlHeader)

	encoder := xml.NewEncoder(&buffer)
	encoder.Indent("", "  ")
	if err := encoder.Encode(info); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}

	buffer.WriteByte('\n')
	return buffer.Bytes(), nil
}
