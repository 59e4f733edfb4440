package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"
)

// Stats prints the gateway request metrics of this run and the slots kept
// in the local database. Slot values are not shown.
func (a *App) Stats(ctx context.Context) error {
	families, err := a.reg.Gather()
	if err != nil {
		a.println("Error:", err)
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tLABELS\tVALUE")
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			var value string
			switch {
			case m.GetCounter() != nil:
				value = fmt.Sprintf("%g", m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				value = fmt.Sprintf("count=%d sum=%.3fs", h.GetSampleCount(), h.GetSampleSum())
			default:
				continue
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", mf.GetName(), strings.Join(labels, ","), value)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	stored, err := a.slots.List(ctx)
	if err != nil {
		a.log.Error(ctx, "list slots", "err", err)
		return err
	}
	keys := make([]string, 0, len(stored))
	for k := range stored {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	a.printf("Session: %s\n", a.prov.State())
	a.printf("Device: %s\n", a.prov.DeviceID())
	for _, k := range keys {
		a.printf("Slot %s: %d bytes\n", k, len(stored[k]))
	}
	return nil
}
