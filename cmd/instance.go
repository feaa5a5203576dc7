package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/admarket/clocksim/internal/auction"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// instanceFile is the JSON document accepted by --file.
type instanceFile struct {
	NumSlots int       `json:"num_slots"`
	CTRs     []float64 `json:"ctrs"`
	Values   []float64 `json:"values"`
}

func addInstanceFlags(c *cobra.Command) {
	c.Flags().IntP("slots", "n", 0, "Number of ad slots")
	c.Flags().String("ctrs", "", "Comma-separated slot CTRs including the terminal 0 (e.g. 1.0,0.6,0)")
	c.Flags().String("values", "", "Comma-separated advertiser per-click values (e.g. 10,6,2)")
	c.Flags().StringP("file", "f", "", "JSON instance file (overrides the other instance flags)")
}

// instanceFromFlags builds the auction instance from --file or from the
// --slots/--ctrs/--values triple.
func instanceFromFlags(c *cobra.Command) (*auction.Instance, error) {
	path, _ := c.Flags().GetString("file")
	if path != "" {
		return instanceFromJSON(path)
	}

	numSlots, _ := c.Flags().GetInt("slots")
	ctrsStr, _ := c.Flags().GetString("ctrs")
	valuesStr, _ := c.Flags().GetString("values")

	if numSlots == 0 || ctrsStr == "" || valuesStr == "" {
		return nil, fmt.Errorf("either --file or all of --slots, --ctrs and --values are required")
	}

	ctrs, err := parseFloats(ctrsStr)
	if err != nil {
		return nil, fmt.Errorf("parse --ctrs: %w", err)
	}

	values, err := parseFloats(valuesStr)
	if err != nil {
		return nil, fmt.Errorf("parse --values: %w", err)
	}

	in, err := auction.NewInstance(numSlots, ctrs, values)
	if err != nil {
		auction.InstancesRejectedTotal.WithLabelValues(auction.RejectionReason(err)).Inc()
		return nil, fmt.Errorf("invalid instance: %w", err)
	}

	return in, nil
}

func instanceFromJSON(path string) (*auction.Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read instance file: %w", err)
	}

	var doc instanceFile
	err = json.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("parse instance file: %w", err)
	}

	in, err := auction.NewInstance(doc.NumSlots, doc.CTRs, doc.Values)
	if err != nil {
		auction.InstancesRejectedTotal.WithLabelValues(auction.RejectionReason(err)).Inc()
		return nil, fmt.Errorf("invalid instance in %s: %w", path, err)
	}

	return in, nil
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")

	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q: %w", part, err)
		}
		out = append(out, f)
	}

	return out, nil
}
