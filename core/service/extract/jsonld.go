package extract

import (
	"context"
	"strings"
	"time"

	"tripscan/core/domain"

	"github.com/goccy/go-json"
	"golang.org/x/net/html"
)

// MarkupConfidence is assigned to itineraries decoded from embedded
// structured-data markup.
const MarkupConfidence = 0.6

// MarkupExtractor parses the first ld+json script block of the HTML body as
// a reservation payload.
type MarkupExtractor struct {
	opts Options
}

func NewMarkupExtractor(opts Options) *MarkupExtractor {
	return &MarkupExtractor{opts: opts}
}

func (e *MarkupExtractor) Name() string { return "jsonld" }

// jsonldReservation is the loose shape of a schema.org reservation block.
// Unknown fields are ignored; absent fields fall back to placeholders.
type jsonldReservation struct {
	Type              string              `json:"@type"`
	ReservationNumber string              `json:"reservationNumber"`
	ReservationFor    *jsonldFlight       `json:"reservationFor"`
	Graph             []jsonldReservation `json:"@graph"`
}

type jsonldFlight struct {
	DepartureAirport *jsonldPlace `json:"departureAirport"`
	ArrivalAirport   *jsonldPlace `json:"arrivalAirport"`
	DepartureTime    string       `json:"departureTime"`
	ArrivalTime      string       `json:"arrivalTime"`
}

type jsonldPlace struct {
	Name string `json:"name"`
}

func (e *MarkupExtractor) Extract(_ context.Context, in *Input) (*domain.ParsedItinerary, error) {
	if in.Body.HTML == "" {
		return nil, nil
	}

	raw := firstJSONLDBlock(in.Body.HTML)
	if raw == "" {
		return nil, nil
	}

	res, ok := decodeReservation(raw)
	if !ok {
		// Malformed structured data falls through to the next extractor.
		return nil, nil
	}

	leg := placeholderLeg(e.opts, "", "")
	if f := res.ReservationFor; f != nil {
		if f.DepartureAirport != nil {
			leg.FromCity = f.DepartureAirport.Name
		}
		if f.ArrivalAirport != nil {
			leg.ToCity = f.ArrivalAirport.Name
		}
		if t, ok := parseJSONLDTime(f.DepartureTime); ok {
			leg.Departure = t
			leg.Arrival = t.Add(e.opts.window())
		}
		if t, ok := parseJSONLDTime(f.ArrivalTime); ok {
			leg.Arrival = t
		}
	}

	return &domain.ParsedItinerary{
		Vendor:       domain.VendorJSONLD,
		Confirmation: res.ReservationNumber,
		Legs:         []domain.Leg{leg},
		Hash:         domain.ContentHash(raw),
		Confidence:   MarkupConfidence,
	}, nil
}

// decodeReservation handles the shapes ld+json blocks come in: a bare
// object, a top-level array, or an @graph wrapper. Containers yield their
// first node that carries reservation data.
func decodeReservation(raw string) (jsonldReservation, bool) {
	data := []byte(raw)

	if strings.HasPrefix(strings.TrimSpace(raw), "[") {
		var list []jsonldReservation
		if err := json.Unmarshal(data, &list); err != nil || len(list) == 0 {
			return jsonldReservation{}, false
		}
		return pickReservation(list), true
	}

	var res jsonldReservation
	if err := json.Unmarshal(data, &res); err != nil {
		return jsonldReservation{}, false
	}
	if res.ReservationFor == nil && res.ReservationNumber == "" && len(res.Graph) > 0 {
		return pickReservation(res.Graph), true
	}
	return res, true
}

func pickReservation(nodes []jsonldReservation) jsonldReservation {
	for _, n := range nodes {
		if n.ReservationFor != nil || n.ReservationNumber != "" {
			return n
		}
	}
	return nodes[0]
}

// firstJSONLDBlock returns the text of the first
// <script type="application/ld+json"> node, or "".
func firstJSONLDBlock(body string) string {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return ""
	}

	var found string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "script" && isJSONLDScript(n) {
			var sb strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					sb.WriteString(c.Data)
				}
			}
			if s := strings.TrimSpace(sb.String()); s != "" {
				found = s
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}

func isJSONLDScript(n *html.Node) bool {
	for _, attr := range n.Attr {
		if attr.Key == "type" && strings.EqualFold(strings.TrimSpace(attr.Val), "application/ld+json") {
			return true
		}
	}
	return false
}

func parseJSONLDTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
