package set

import (
	"fmt"
	"sort"
	"strings"

	"github.com/boshu2/fuzzy/internal/types"
)

// Classifier partitions loaded sets into inputs and outputs by naming
// convention: a set whose name contains the output marker substring becomes
// an output set, everything else an input set. The marker is configuration
// carried by the definitions file's author, not business logic; the default
// matches the classic tipping scenario.
type Classifier struct {
	// OutputMarker is the substring that marks a set name as an output set.
	OutputMarker string
}

// DefaultOutputMarker is the conventional marker for the tipping scenario.
const DefaultOutputMarker = "Tip"

// NewClassifier creates a classifier, falling back to DefaultOutputMarker
// when marker is empty.
func NewClassifier(marker string) Classifier {
	if marker == "" {
		marker = DefaultOutputMarker
	}
	return Classifier{OutputMarker: marker}
}

// Classify returns the role for a set name. An empty marker classifies
// everything as input.
func (c Classifier) Classify(name string) Role {
	if c.OutputMarker != "" && strings.Contains(name, c.OutputMarker) {
		return RoleOutput
	}
	return RoleInput
}

// ChannelBindings maps a named crisp-input channel to the name substrings
// that select which input sets it fuzzifies. A set belongs to the first
// channel (in sorted channel order, for determinism) with a matching
// substring.
type ChannelBindings map[string][]string

// DefaultChannelBindings reproduces the tipping scenario's wiring: the
// service channel drives sets named after service or waiting time, the food
// channel drives sets named after food or price.
func DefaultChannelBindings() ChannelBindings {
	return ChannelBindings{
		"service": {"Service", "waiting_time"},
		"food":    {"Food", "price"},
	}
}

// channelFor returns the channel matching the set name, or "".
func (b ChannelBindings) channelFor(name string) string {
	channels := make([]string, 0, len(b))
	for ch := range b {
		channels = append(channels, ch)
	}
	sort.Strings(channels)

	for _, ch := range channels {
		for _, sub := range b[ch] {
			if strings.Contains(name, sub) {
				return ch
			}
		}
	}
	return ""
}

// BindChannels fuzzifies every input set in the collection against the crisp
// value of its bound channel. Input sets with no matching channel, and
// channels supplied without a value, yield warning diagnostics; the sets stay
// unfuzzified and contribute no membership degree.
func (b ChannelBindings) BindChannels(c *Collection, inputs map[string]float64) []types.Diagnostic {
	var diags []types.Diagnostic
	for _, s := range c.Inputs() {
		ch := b.channelFor(s.Name)
		if ch == "" {
			diags = append(diags, types.Diagnostic{
				Severity: types.SeverityWarning,
				Code:     types.CodeUnboundInput,
				Subject:  s.Name,
				Message:  fmt.Sprintf("input set %q matches no channel binding", s.Name),
			})
			continue
		}
		x, ok := inputs[ch]
		if !ok {
			diags = append(diags, types.Diagnostic{
				Severity: types.SeverityWarning,
				Code:     types.CodeUnboundInput,
				Subject:  s.Name,
				Message:  fmt.Sprintf("no crisp value supplied for channel %q", ch),
			})
			continue
		}
		diags = append(diags, s.Fuzzify(x)...)
	}
	return diags
}
