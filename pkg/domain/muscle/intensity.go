package muscle

// ColorFor picks the palette colour for a muscle. Index 0 is the lowest intensity and
// frequencies beyond the palette length saturate at the last colour. A muscle that was
// never worked, or an empty palette, reports false so the caller can use the body colour.
func ColorFor(stats Stats, colors []string, id ID) (string, bool) {
	freq := stats[id].Frequency
	if freq <= 0 || len(colors) == 0 {
		return "", false
	}
	return colors[min(len(colors)-1, freq-1)], true
}
