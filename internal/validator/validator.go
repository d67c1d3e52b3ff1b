// Package validator implements the single-pass pre-flight structural check
// run before a world is simulated. It never raises; it produces a report.
package validator

import (
	"fmt"

	"github.com/rulegraph/worldsim/internal/model"
)

// Validate checks world against cards and returns a ValidationReport. ok is
// true iff no issues were found.
func Validate(world *model.World, cards map[string]*model.LawCard) model.ValidationReport {
	var issues []model.ValidationIssue

	if len(world.Frames) == 0 {
		issues = append(issues, issue("world.frames", "Missing required field 'frames'"))
	}
	if len(world.Entities) == 0 {
		issues = append(issues, issue("world.entities", "Missing required field 'entities'"))
	}
	if len(world.Dynamics) == 0 {
		issues = append(issues, issue("world.dynamics", "Missing required field 'dynamics'"))
	}

	if len(world.Frames) > 0 && !world.Frames[0].HasRequiredUnits() {
		issues = append(issues, issue("world.frames[0].units", "Units must include length,time,mass"))
	}

	for _, body := range world.Entities {
		if body.Mass.Unit == "" {
			issues = append(issues, issue(fmt.Sprintf("%s.mass.unit", body.ID), "Mass unit required"))
		}
		if body.State.Position.Unit == "" {
			issues = append(issues, issue(fmt.Sprintf("%s.state.position.unit", body.ID), "Position unit required"))
		}
		if body.State.Velocity.Unit == "" {
			issues = append(issues, issue(fmt.Sprintf("%s.state.velocity.unit", body.ID), "Velocity unit required"))
		}
	}

	for _, dyn := range world.Dynamics {
		card := lookupCard(cards, dyn.Ref)
		if card == nil {
			issues = append(issues, issue(fmt.Sprintf("dynamics:%s", dyn.Ref), "LawCard not resolved"))
			continue
		}
		if card.Validity == nil {
			issues = append(issues, issue(fmt.Sprintf("%s.validity", card.ID), "LawCard.validity required"))
		}
		if card.Invariants == nil {
			issues = append(issues, issue(fmt.Sprintf("%s.invariants", card.ID), "LawCard.invariants required"))
		}
	}

	return model.ValidationReport{OK: len(issues) == 0, Issues: issues}
}

// lookupCard finds a card by map key first (caller-supplied ref, typically
// equal to the card id), falling back to a scan by declared id.
func lookupCard(cards map[string]*model.LawCard, ref string) *model.LawCard {
	if c, ok := cards[ref]; ok {
		return c
	}
	for _, c := range cards {
		if c.ID == ref {
			return c
		}
	}
	return nil
}

func issue(path, message string) model.ValidationIssue {
	return model.ValidationIssue{Path: path, Message: message}
}
