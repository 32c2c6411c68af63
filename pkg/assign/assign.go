// Package assign generates shift proposals for unfilled coverage. It is
// a separate concern from the reconcile core: reconciliation only
// reports staffing state, while this planner decides who could fill the
// gaps when an administrator asks for a bulk auto-generation.
package assign

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/clinicshift/clinicshift-api/pkg/models"
	"github.com/clinicshift/clinicshift-api/pkg/reconcile"
)

// Candidate is a staff member considered for new shifts, with a weekly
// hours cap and whatever is already on their plate.
type Candidate struct {
	ID            string
	Name          string
	Role          models.Role
	MaxHours      float64
	AssignedHours float64

	windows []window
}

type window struct {
	start, end time.Time
}

// Proposal is one generated shift covering a specific coverage gap.
type Proposal struct {
	CoverageID string      `json:"coverageId"`
	StaffID    string      `json:"staffId"`
	StaffName  string      `json:"staffName"`
	Role       models.Role `json:"role"`
	Start      time.Time   `json:"start"`
	End        time.Time   `json:"end"`
}

// Conflict explains why a coverage gap could not be filled.
type Conflict struct {
	CoverageID string      `json:"coverageId"`
	Role       models.Role `json:"role"`
	Start      time.Time   `json:"start"`
	Reasons    []string    `json:"reasons"`
}

// Planner assigns candidates to open coverage slots.
type Planner struct {
	Candidates map[string]*Candidate
	Conflicts  []Conflict
}

// NewPlanner builds a planner over the given staff pool.
func NewPlanner(staff []Candidate) *Planner {
	pool := make(map[string]*Candidate, len(staff))
	for i := range staff {
		c := staff[i]
		pool[c.ID] = &c
	}
	return &Planner{Candidates: pool}
}

// Prefill records existing non-cancelled shifts so generated proposals
// respect hours already committed and never double-book anyone.
func (p *Planner) Prefill(shifts []models.ScheduledShift) {
	for _, s := range shifts {
		if s.Cancelled() {
			continue
		}
		c, ok := p.Candidates[s.Staff.ID]
		if !ok {
			continue
		}
		c.AssignedHours += s.EndTime.Sub(s.StartTime).Hours()
		c.windows = append(c.windows, window{s.StartTime, s.EndTime})
	}
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

func (c *Candidate) free(start, end time.Time) bool {
	for _, w := range c.windows {
		if overlaps(w.start, w.end, start, end) {
			return false
		}
	}
	return true
}

// Plan fills each open slot's missing headcount with the least-loaded
// candidate of the matching role who fits the window and hours cap.
// Slots that cannot be filled are recorded in Conflicts with the reasons
// candidates were rejected. Set shuffle to randomize slot order so
// repeated runs spread assignments differently.
func (p *Planner) Plan(open []reconcile.StaffingSnapshot, shuffle bool) []Proposal {
	type gap struct {
		snap reconcile.StaffingSnapshot
	}

	var gaps []gap
	for _, snap := range open {
		for i := 0; i < snap.Missing(); i++ {
			gaps = append(gaps, gap{snap})
		}
	}

	if shuffle && len(gaps) > 0 {
		r := rand.New(rand.NewSource(time.Now().UnixNano()))
		r.Shuffle(len(gaps), func(i, j int) {
			gaps[i], gaps[j] = gaps[j], gaps[i]
		})
	}

	var proposals []Proposal
	for _, g := range gaps {
		snap := g.snap
		duration := snap.End.Sub(snap.Start).Hours()

		var best *Candidate
		minHours := -1.0
		maxHoursCount := 0
		overlapCount := 0
		roleMismatch := 0

		for _, c := range p.Candidates {
			if c.Role != snap.Role {
				roleMismatch++
				continue
			}
			fitsHours := c.AssignedHours+duration <= c.MaxHours
			noOverlap := c.free(snap.Start, snap.End)

			if fitsHours && noOverlap {
				if best == nil || c.AssignedHours < minHours {
					best = c
					minHours = c.AssignedHours
				}
				continue
			}
			if !fitsHours {
				maxHoursCount++
			}
			if !noOverlap {
				overlapCount++
			}
		}

		if best != nil {
			best.AssignedHours += duration
			best.windows = append(best.windows, window{snap.Start, snap.End})
			proposals = append(proposals, Proposal{
				CoverageID: snap.CoverageID,
				StaffID:    best.ID,
				StaffName:  best.Name,
				Role:       snap.Role,
				Start:      snap.Start,
				End:        snap.End,
			})
			continue
		}

		var reasons []string
		if maxHoursCount > 0 {
			reasons = append(reasons, fmt.Sprintf("%d staff were at their weekly hours cap", maxHoursCount))
		}
		if overlapCount > 0 {
			reasons = append(reasons, fmt.Sprintf("%d staff had overlapping shifts", overlapCount))
		}
		if len(reasons) == 0 {
			reasons = append(reasons, fmt.Sprintf("no available staff with role %s", snap.Role))
		}
		p.Conflicts = append(p.Conflicts, Conflict{
			CoverageID: snap.CoverageID,
			Role:       snap.Role,
			Start:      snap.Start,
			Reasons:    reasons,
		})
	}

	return proposals
}

// FairnessScore returns a percentage (0-100) of how evenly hours are
// distributed across candidates. 100 means zero standard deviation.
func (p *Planner) FairnessScore() float64 {
	if len(p.Candidates) == 0 {
		return 100.0
	}

	var sum float64
	for _, c := range p.Candidates {
		sum += c.AssignedHours
	}
	if sum == 0 {
		return 100.0
	}

	mean := sum / float64(len(p.Candidates))
	var varianceSum float64
	for _, c := range p.Candidates {
		diff := c.AssignedHours - mean
		varianceSum += diff * diff
	}
	stdDev := math.Sqrt(varianceSum / float64(len(p.Candidates)))

	score := (1.0 - stdDev/mean) * 100.0
	if score < 0 {
		return 0.0
	}
	return score
}
