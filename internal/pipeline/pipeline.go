// Package pipeline drives the multi-turn resolution of a chat listing into
// a disclosure text: address resolution, building/unit/usage disambiguation,
// concurrent detail retrieval and final assembly.
//
// The pipeline is stateless across turns. Every suspension point returns the
// candidate lists and fetched detail sets to the caller, who passes them back
// on the next turn; a supplied cache is treated as authoritative and is never
// silently re-fetched.
package pipeline

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	apperrors "disclosure-pipeline/internal/common/errors"
	"disclosure-pipeline/internal/common/logger"
	"disclosure-pipeline/internal/common/metrics"

	"disclosure-pipeline/internal/area"
	"disclosure-pipeline/internal/assemble"
	"disclosure-pipeline/internal/classify"
	"disclosure-pipeline/internal/models"
	"disclosure-pipeline/internal/registry"

	"golang.org/x/sync/errgroup"
)

// maxDetailCalls bounds the detail-lookup fan-out.
const maxDetailCalls = 3

// Parser turns chat text into a flat listing record. An unparseable text
// yields a record with an empty Address.
type Parser interface {
	Parse(text string) models.ListingRecord
}

// AddressResolver derives administrative codes from a listing address. An
// unresolvable address yields an incomplete code.
type AddressResolver interface {
	Resolve(address string) models.AddressCode
}

// Config carries the per-endpoint row limits for registry lookups.
type Config struct {
	TitleRows int
	FloorRows int
	AreaRows  int
	UnitRows  int
}

// DefaultConfig mirrors the registry defaults.
func DefaultConfig() Config {
	return Config{TitleRows: 10, FloorRows: 50, AreaRows: 100, UnitRows: 100}
}

type Pipeline struct {
	parser   Parser
	resolver AddressResolver
	registry registry.Client
	config   Config
	logger   logger.Logger
}

func New(parser Parser, resolver AddressResolver, reg registry.Client, cfg Config, log logger.Logger) *Pipeline {
	return &Pipeline{
		parser:   parser,
		resolver: resolver,
		registry: reg,
		config:   cfg,
		logger:   log.WithFields(map[string]interface{}{"component": "pipeline"}),
	}
}

// Resolve runs one turn of the resolution. It reports at most one
// outstanding ambiguity per invocation; the caller resubmits the same text
// with the missing selection and the returned caches to continue.
func (p *Pipeline) Resolve(ctx context.Context, text string, sel models.Selections, caches models.Caches) (out models.Outcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("resolution panicked", map[string]interface{}{
				"panic": fmt.Sprintf("%v", r),
				"stack": string(debug.Stack()),
			})
			out = errorOutcome(apperrors.NewInternalFailureError(fmt.Sprintf("%v", r)))
		}
		metrics.ResolutionRequests.WithLabelValues(out.Kind).Inc()
		metrics.ResolutionDuration.Observe(time.Since(start).Seconds())
	}()
	return p.resolve(ctx, text, sel, caches)
}

func (p *Pipeline) resolve(ctx context.Context, text string, sel models.Selections, caches models.Caches) models.Outcome {
	text, violation := stripViolationHeader(text)

	listing := p.parser.Parse(text)
	if violation {
		listing.ViolationBuilding = true
	}
	if listing.Address == "" {
		return errorOutcome(apperrors.NewAddressParseFailedError())
	}

	code := p.resolver.Resolve(listing.Address)
	if !code.Complete() {
		return errorOutcome(apperrors.NewAddressCodeFailedError(listing.Address))
	}

	buildings := caches.Buildings
	if len(buildings) == 0 {
		var err error
		buildings, err = p.registry.TitleInfo(ctx, code, p.config.TitleRows)
		if err != nil {
			return errorOutcome(apperrors.NewRegistryLookupFailedError(err.Error()))
		}
		if len(buildings) == 0 {
			return errorOutcome(apperrors.NewRegistryLookupFailedError("조회 결과가 없습니다."))
		}
		if listing.Dong != "" && len(buildings) > 1 {
			if filtered := filterByDong(buildings, listing.Dong); len(filtered) > 0 {
				buildings = filtered
			}
		}
	}

	var building models.BuildingRecord
	if len(buildings) > 1 {
		if sel.BuildingIndex == nil {
			p.logger.Debug("building ambiguity", map[string]interface{}{"candidates": len(buildings)})
			return models.Outcome{
				Kind:        models.OutcomeNeedsBuildingSelection,
				Buildings:   buildings,
				Parsed:      &listing,
				AddressCode: &code,
				Caches:      &models.Caches{Buildings: buildings},
			}
		}
		if *sel.BuildingIndex < 0 || *sel.BuildingIndex >= len(buildings) {
			return errorOutcome(apperrors.NewSelectionOutOfRangeError("건축물", *sel.BuildingIndex, len(buildings)))
		}
		building = buildings[*sel.BuildingIndex]
	} else {
		building = buildings[0]
	}

	details := caches.Details
	if details == nil && building.RegistryKey != "" {
		var err error
		details, err = p.fetchDetails(ctx, code, building.RegistryKey, listing.Ho != "")
		if err != nil {
			return errorOutcome(apperrors.NewRegistryLookupFailedError(err.Error()))
		}
	}
	if details == nil {
		details = &models.DetailSet{}
	}

	resumeCaches := &models.Caches{Buildings: buildings, Details: details}

	var selectedUnit *area.SelectedUnit
	if listing.Floor != 0 {
		units := area.UnitsOnFloor(details.UnitAreas, details.Floors, listing.Floor)
		if len(units) > 1 {
			unitSel := sel.Unit
			if unitSel == nil {
				if idx, ok := autoMatchHo(listing.Ho, units); ok {
					unitSel = &models.UnitIndex{Index: idx}
				} else {
					listingArea := listing.AreaM2
					if listingArea == 0 {
						listingArea = listing.ActualAreaM2
					}
					cmp := area.CompareUnits(listingArea, units)
					p.logger.Debug("unit ambiguity", map[string]interface{}{"candidates": len(units)})
					return models.Outcome{
						Kind:           models.OutcomeNeedsUnitSelection,
						Units:          units,
						UnitComparison: &cmp,
						Parsed:         &listing,
						AddressCode:    &code,
						Caches:         resumeCaches,
					}
				}
			}
			var err *apperrors.StandardError
			selectedUnit, err = selectUnit(*unitSel, units)
			if err != nil {
				return errorOutcome(err)
			}
		}
	}

	cls := p.judgeUsage(listing, details)
	if cls.NeedsSelection {
		if sel.UsageChoice == "" {
			p.logger.Debug("usage ambiguity", nil)
			return models.Outcome{
				Kind:         models.OutcomeNeedsUsageSelection,
				UsageOptions: classify.UsageSelectionOptions,
				Parsed:       &listing,
				AddressCode:  &code,
				Caches:       resumeCaches,
			}
		}
		cls.Judged = sel.UsageChoice
		cls.NeedsSelection = false
	}
	if selectedUnit != nil && selectedUnit.Usage != "" && cls.Judged == "" {
		cls.Judged = selectedUnit.Usage
	}
	if sel.UsageChoice != "" {
		cls.Judged = sel.UsageChoice
	}

	cmp := area.Reconcile(listing, details.Floors, details.UnitAreas, listing.Floor, listing.Ho, selectedUnit)
	if selectedUnit != nil {
		if cmp.RegistryArea == 0 {
			cmp.RegistryArea = selectedUnit.Area
		}
		cmp.SelectedUnitArea = selectedUnit.Area
		cmp.WholeFloor = selectedUnit.WholeFloor
		if selectedUnit.WholeFloor {
			cmp.UnitBreakdown = selectedUnit.Units
		}
	}

	disclosureText := assemble.Assemble(listing, building, cls, cmp)

	return models.Outcome{
		Kind:           models.OutcomeSuccess,
		Text:           disclosureText,
		Building:       &building,
		Classification: &cls,
		AreaComparison: &cmp,
		Parsed:         &listing,
		AddressCode:    &code,
		Caches:         resumeCaches,
	}
}

// fetchDetails issues the floor, unit-area and (when the listing names a
// unit) unit-info lookups concurrently, bounded at three outstanding calls.
// Any failure fails the whole step; there is no partial-detail continuation.
func (p *Pipeline) fetchDetails(ctx context.Context, code models.AddressCode, registryKey string, withUnits bool) (*models.DetailSet, error) {
	var details models.DetailSet

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxDetailCalls)

	g.Go(func() error {
		floors, err := p.registry.FloorInfo(ctx, code, registryKey, p.config.FloorRows)
		if err != nil {
			return err
		}
		details.Floors = floors
		return nil
	})
	g.Go(func() error {
		areas, err := p.registry.UnitAreaInfo(ctx, code, registryKey, p.config.AreaRows)
		if err != nil {
			return err
		}
		details.UnitAreas = areas
		return nil
	})
	if withUnits {
		g.Go(func() error {
			units, err := p.registry.UnitInfo(ctx, code, registryKey, p.config.UnitRows)
			if err != nil {
				return err
			}
			details.Units = units
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &details, nil
}

func selectUnit(sel models.UnitIndex, units []models.UnitSummary) (*area.SelectedUnit, *apperrors.StandardError) {
	if sel.WholeFloor {
		selected := &area.SelectedUnit{WholeFloor: true, Units: units, Usage: units[0].MainUsage}
		for _, u := range units {
			selected.Area += u.Area
		}
		return selected, nil
	}
	if sel.Index < 0 || sel.Index >= len(units) {
		return nil, apperrors.NewSelectionOutOfRangeError("전유부분", sel.Index, len(units))
	}
	u := units[sel.Index]
	return &area.SelectedUnit{Ho: u.Ho, Area: u.Area, Usage: u.MainUsage}, nil
}

func errorOutcome(err *apperrors.StandardError) models.Outcome {
	return models.Outcome{
		Kind: models.OutcomeError,
		Error: &models.ErrorInfo{
			Code:    string(err.Code),
			Message: err.Message,
			Details: err.Details,
		},
	}
}
