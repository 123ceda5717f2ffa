// Package samplertest provides test doubles for the sampler package.
package samplertest

import (
	"context"

	"github.com/Dicklesworthstone/hostmon/internal/model"
)

// Provider replays scripted snapshots. Each Refresh advances to the next
// entry; once the script runs out the last snapshot repeats. A non-nil
// entry in Errs at the same position makes that Refresh fail without
// advancing.
type Provider struct {
	Snapshots []model.Snapshot
	Errs      []error

	Refreshes int
	current   model.Snapshot
	next      int
}

// NewProvider returns a provider replaying snaps in order.
func NewProvider(snaps ...model.Snapshot) *Provider {
	return &Provider{Snapshots: snaps}
}

func (p *Provider) Refresh(ctx context.Context) error {
	call := p.Refreshes
	p.Refreshes++
	if err := ctx.Err(); err != nil {
		return err
	}
	if call < len(p.Errs) && p.Errs[call] != nil {
		return p.Errs[call]
	}
	if len(p.Snapshots) == 0 {
		return nil
	}
	idx := p.next
	if idx >= len(p.Snapshots) {
		idx = len(p.Snapshots) - 1
	}
	p.current = p.Snapshots[idx]
	p.next++
	return nil
}

func (p *Provider) CPUPercent() float64            { return p.current.CPUPercent }
func (p *Provider) Memory() (used, total uint64)   { return p.current.MemoryUsed, p.current.MemoryTotal }
func (p *Provider) Disks() []model.DiskReading     { return p.current.Disks }
func (p *Provider) Interfaces() []model.NetCounter { return p.current.Interfaces }
