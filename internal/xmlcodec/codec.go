// internal/xmlcodec/codec.go
// Package xmlcodec maps cities, weather readings and result/error messages
// to the XML documents this service reads and writes.
package xmlcodec

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"weather-xml/internal/model"
	"weather-xml/internal/util"
)

const indent = "  "

type cityXML struct {
	XMLName xml.Name `xml:"city"`
	ID      string   `xml:"id,attr"`
	Name    string   `xml:"name"`
}

type citiesXML struct {
	XMLName xml.Name  `xml:"cities"`
	Cities  []cityXML `xml:"city"`
}

type weatherXML struct {
	XMLName     xml.Name `xml:"weather"`
	City        string   `xml:"city"`
	Temperature string   `xml:"temperature"`
	FeelsLike   string   `xml:"feels_like"`
	Humidity    string   `xml:"humidity"`
	Description string   `xml:"description"`
	WindSpeed   string   `xml:"wind_speed"`
}

// Field is one text child element of a flat document.
type Field struct {
	Name  string
	Value string
}

type fieldXML struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

type flatXML struct {
	XMLName xml.Name
	Fields  []fieldXML
}

// EncodeCities renders <cities><city id="N"><name>..</name></city>...</cities>.
func EncodeCities(c model.CityCollection) ([]byte, error) {
	doc := citiesXML{Cities: make([]cityXML, 0, len(c))}
	for _, city := range c {
		doc.Cities = append(doc.Cities, cityXML{ID: strconv.Itoa(city.ID), Name: city.Name})
	}
	return render(doc)
}

// DecodeCities parses a collection document. The root must be <cities>
// and every city must carry a numeric id attribute.
func DecodeCities(data []byte) (model.CityCollection, error) {
	var doc citiesXML
	if err := decodeDocument(data, &doc); err != nil {
		return nil, err
	}
	out := make(model.CityCollection, 0, len(doc.Cities))
	for _, c := range doc.Cities {
		id, err := strconv.Atoi(strings.TrimSpace(c.ID))
		if err != nil {
			return nil, fmt.Errorf("city id %q: %w", c.ID, err)
		}
		out = append(out, model.City{ID: id, Name: c.Name})
	}
	return out, nil
}

// EncodeWeather always emits all six children; missing values stay empty.
func EncodeWeather(r model.WeatherReading) ([]byte, error) {
	return render(weatherXML{
		City:        r.City,
		Temperature: r.Temperature,
		FeelsLike:   r.FeelsLike,
		Humidity:    r.Humidity,
		Description: r.Description,
		WindSpeed:   r.WindSpeed,
	})
}

func EncodeError(message string) ([]byte, error) {
	return EncodeFields("error", Field{Name: "message", Value: message})
}

// EncodeResult renders <result><message>..</message> followed by extra.
func EncodeResult(message string, extra ...Field) ([]byte, error) {
	fields := append([]Field{{Name: "message", Value: message}}, extra...)
	return EncodeFields("result", fields...)
}

// EncodeFields renders a root element holding one text child per field,
// in the given order.
func EncodeFields(root string, fields ...Field) ([]byte, error) {
	doc := flatXML{XMLName: xml.Name{Local: root}}
	for _, f := range fields {
		doc.Fields = append(doc.Fields, fieldXML{XMLName: xml.Name{Local: f.Name}, Value: f.Value})
	}
	return render(doc)
}

var errMissingName = errors.New("Missing name element")

type cityPayloadXML struct {
	Name *string `xml:"name"`
}

// DecodeCityPayload extracts the name from <city><name>..</name></city>.
// The root element name is not checked. Malformed XML or a missing or
// blank name is an invalid payload.
func DecodeCityPayload(data []byte) (string, error) {
	var p cityPayloadXML
	if err := decodeDocument(data, &p); err != nil {
		return "", invalidPayload(err)
	}
	if p.Name == nil || strings.TrimSpace(*p.Name) == "" {
		return "", invalidPayload(errMissingName)
	}
	return strings.TrimSpace(*p.Name), nil
}

type loginXML struct {
	Username string `xml:"username"`
	Password string `xml:"password"`
}

// DecodeLogin reads <login><username>..</username><password>..</password></login>.
func DecodeLogin(data []byte) (username, password string, err error) {
	var l loginXML
	if err := decodeDocument(data, &l); err != nil {
		return "", "", invalidPayload(err)
	}
	return l.Username, l.Password, nil
}

var errTrailingContent = errors.New("junk after document element")

// decodeDocument decodes the root element into v and rejects anything but
// whitespace, comments and processing instructions after it.
func decodeDocument(data []byte, v any) error {
	d := xml.NewDecoder(bytes.NewReader(data))
	if err := d.Decode(v); err != nil {
		return err
	}
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return errTrailingContent
			}
		default:
			return errTrailingContent
		}
	}
}

func invalidPayload(cause error) error {
	return util.BadInput("Invalid XML payload: "+cause.Error(), cause)
}

func render(v any) ([]byte, error) {
	body, err := xml.MarshalIndent(v, "", indent)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(len(xml.Header) + len(body) + 1)
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
