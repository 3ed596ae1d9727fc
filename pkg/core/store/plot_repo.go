package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"property_valuation/pkg/models"
)

var ErrPlotNotFound = errors.New("plot not found")

// Querier is the subset of pgxpool.Pool and pgx.Tx the repositories use.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PlotRepo reads plots and their child collections.
//
// Schema assumption: one table per collection keyed by plot_id, numeric
// columns for every amount. Amounts are selected as text so they convert to
// decimal.Decimal without loss.
type PlotRepo struct {
	db Querier
}

// NewPlotRepo creates a repository over db. A nil db uses the shared pool.
func NewPlotRepo(db Querier) *PlotRepo {
	return &PlotRepo{db: normalize(db)}
}

func (r *PlotRepo) conn() (Querier, error) {
	if r.db != nil {
		return r.db, nil
	}
	if p := GetPool(); p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("database pool not initialized")
}

// normalize turns a typed nil pool into a nil interface.
func normalize(db Querier) Querier {
	if p, ok := db.(*pgxpool.Pool); ok && p == nil {
		return nil
	}
	return db
}

// Load returns the plot with every collection the engine reads.
func (r *PlotRepo) Load(ctx context.Context, id uuid.UUID) (*models.Plot, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}

	plot := &models.Plot{ID: id}
	var extent, class string
	var inspection, analysis *time.Time
	err = db.QueryRow(ctx, `
		SELECT name, address, client_name, COALESCE(extent, 0)::text, classification,
		       inspection_date, analysis_date, COALESCE(construction_items, '{}')
		FROM plots
		WHERE id = $1
	`, id).Scan(&plot.Name, &plot.Address, &plot.ClientName, &extent, &class,
		&inspection, &analysis, &plot.ConstructionItems)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrPlotNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load plot %s: %w", id, err)
	}
	if plot.Extent, err = parseDecimal(extent); err != nil {
		return nil, fmt.Errorf("plot %s extent: %w", id, err)
	}
	plot.Classification = models.Classification(class)
	if inspection != nil {
		plot.InspectionDate = *inspection
	}
	if analysis != nil {
		plot.AnalysisDate = *analysis
	}

	loaders := []struct {
		name string
		load func(context.Context, Querier, *models.Plot) error
	}{
		{"stored values", loadStoredValues},
		{"tenants", loadTenants},
		{"parking", loadParking},
		{"outgoings", loadOutgoings},
		{"grc", loadGrc},
		{"grc fees", loadGrcFees},
		{"grc depreciation", loadGrcDepr},
		{"insurance", loadInsurance},
		{"comparables", loadComparables},
	}
	for _, l := range loaders {
		if err := l.load(ctx, db, plot); err != nil {
			return nil, fmt.Errorf("failed to load %s for plot %s: %w", l.name, id, err)
		}
	}
	return plot, nil
}

func loadStoredValues(ctx context.Context, db Querier, plot *models.Plot) error {
	rows, err := db.Query(ctx, `
		SELECT id, identifier, COALESCE(value, 0)::text
		FROM stored_values WHERE plot_id = $1 ORDER BY identifier
	`, plot.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var rowID uuid.UUID
		var key, value string
		if err := rows.Scan(&rowID, &key, &value); err != nil {
			return err
		}
		id, err := models.ParseStoredValueID(key)
		if err != nil {
			return err
		}
		v, err := parseDecimal(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		plot.StoredValues = append(plot.StoredValues, models.StoredValue{ID: rowID, Identifier: id, Value: v})
	}
	return rows.Err()
}

func loadTenants(ctx context.Context, db Querier, plot *models.Plot) error {
	rows, err := db.Query(ctx, `
		SELECT id, name, property_type,
		       COALESCE(area_per_client, 0)::text, COALESCE(area_per_market, 0)::text,
		       COALESCE(gross_monthly_rental, 0)::text, COALESCE(rate_per_market, 0)::text,
		       COALESCE(escalation, 0)::text, start_date, end_date
		FROM tenants WHERE plot_id = $1 ORDER BY name
	`, plot.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var t models.Tenant
		var nums [5]string
		if err := rows.Scan(&t.ID, &t.Name, &t.PropertyType,
			&nums[0], &nums[1], &nums[2], &nums[3], &nums[4], &t.StartDate, &t.EndDate); err != nil {
			return err
		}
		if err := parseInto(nums[:], &t.AreaPerClient, &t.AreaPerMarket, &t.GrossMonthlyRental, &t.RatePerMarket, &t.Escalation); err != nil {
			return err
		}
		plot.Tenants = append(plot.Tenants, t)
	}
	return rows.Err()
}

func loadParking(ctx context.Context, db Querier, plot *models.Plot) error {
	rows, err := db.Query(ctx, `
		SELECT id, parking_type,
		       COALESCE(unit_per_client, 0)::text, COALESCE(rate_per_client, 0)::text,
		       COALESCE(unit_per_market, 0)::text, COALESCE(rate_per_market, 0)::text
		FROM parking_records WHERE plot_id = $1 ORDER BY parking_type
	`, plot.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var p models.ParkingRecord
		var nums [4]string
		if err := rows.Scan(&p.ID, &p.ParkingType, &nums[0], &nums[1], &nums[2], &nums[3]); err != nil {
			return err
		}
		if err := parseInto(nums[:], &p.UnitPerClient, &p.RatePerClient, &p.UnitPerMarket, &p.RatePerMarket); err != nil {
			return err
		}
		plot.ParkingRecords = append(plot.ParkingRecords, p)
	}
	return rows.Err()
}

func loadOutgoings(ctx context.Context, db Querier, plot *models.Plot) error {
	rows, err := db.Query(ctx, `
		SELECT id, identifier, item_type,
		       COALESCE(unit_per_client, 0)::text, COALESCE(rate_per_client, 0)::text,
		       COALESCE(unit_per_market, 0)::text, COALESCE(rate_per_market, 0)::text
		FROM outgoing_records WHERE plot_id = $1 ORDER BY identifier
	`, plot.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var o models.OutgoingRecord
		var kind string
		var nums [4]string
		if err := rows.Scan(&o.ID, &o.Identifier, &kind, &nums[0], &nums[1], &nums[2], &nums[3]); err != nil {
			return err
		}
		if o.ItemType, err = models.ParseOutgoingKind(kind); err != nil {
			return err
		}
		if err := parseInto(nums[:], &o.UnitPerClient, &o.RatePerClient, &o.UnitPerMarket, &o.RatePerMarket); err != nil {
			return err
		}
		plot.OutgoingRecords = append(plot.OutgoingRecords, o)
	}
	return rows.Err()
}

func loadGrc(ctx context.Context, db Querier, plot *models.Plot) error {
	rows, err := db.Query(ctx, `
		SELECT id, identifier, unit, COALESCE(size, 0)::text, COALESCE(rate, 0)::text, bull
		FROM grc_records WHERE plot_id = $1 ORDER BY identifier
	`, plot.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var g models.GrcRecord
		var nums [2]string
		if err := rows.Scan(&g.ID, &g.Identifier, &g.Unit, &nums[0], &nums[1], &g.Bull); err != nil {
			return err
		}
		if err := parseInto(nums[:], &g.Size, &g.Rate); err != nil {
			return err
		}
		plot.GrcRecords = append(plot.GrcRecords, g)
	}
	return rows.Err()
}

func loadGrcFees(ctx context.Context, db Querier, plot *models.Plot) error {
	rows, err := db.Query(ctx, `
		SELECT id, identifier, COALESCE(perc, 0)::text
		FROM grc_fee_records WHERE plot_id = $1 ORDER BY identifier
	`, plot.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var f models.GrcFeeRecord
		var perc string
		if err := rows.Scan(&f.ID, &f.Identifier, &perc); err != nil {
			return err
		}
		if f.Perc, err = parseDecimal(perc); err != nil {
			return err
		}
		plot.GrcFeeRecords = append(plot.GrcFeeRecords, f)
	}
	return rows.Err()
}

func loadGrcDepr(ctx context.Context, db Querier, plot *models.Plot) error {
	rows, err := db.Query(ctx, `
		SELECT id, identifier, COALESCE(perc, 0)::text
		FROM grc_depr_records WHERE plot_id = $1 ORDER BY identifier
	`, plot.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var d models.GrcDeprRecord
		var perc string
		if err := rows.Scan(&d.ID, &d.Identifier, &perc); err != nil {
			return err
		}
		if d.Perc, err = parseDecimal(perc); err != nil {
			return err
		}
		plot.GrcDeprRecords = append(plot.GrcDeprRecords, d)
	}
	return rows.Err()
}

func loadInsurance(ctx context.Context, db Querier, plot *models.Plot) error {
	rows, err := db.Query(ctx, `
		SELECT id, item_type, roof_type, COALESCE(rate, 0)::text, COALESCE(area, 0)::text
		FROM insurance_records WHERE plot_id = $1 ORDER BY item_type
	`, plot.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var ins models.InsuranceRecord
		var nums [2]string
		if err := rows.Scan(&ins.ID, &ins.ItemType, &ins.RoofType, &nums[0], &nums[1]); err != nil {
			return err
		}
		if err := parseInto(nums[:], &ins.Rate, &ins.Area); err != nil {
			return err
		}
		plot.InsuranceRecords = append(plot.InsuranceRecords, ins)
	}
	return rows.Err()
}

// loadComparables follows the plot_comparables link table.
func loadComparables(ctx context.Context, db Querier, plot *models.Plot) error {
	rows, err := db.Query(ctx, `
		SELECT c.id, c.location, c.classification,
		       COALESCE(c.price, 0)::text, COALESCE(c.extent, 0)::text,
		       c.transaction_date, COALESCE(c.description, '')
		FROM comparable_plots c
		JOIN plot_comparables pc ON pc.comparable_id = c.id
		WHERE pc.plot_id = $1
		ORDER BY c.transaction_date DESC
	`, plot.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var c models.ComparablePlot
		var class string
		var nums [2]string
		if err := rows.Scan(&c.ID, &c.Location, &class, &nums[0], &nums[1], &c.TransactionDate, &c.Description); err != nil {
			return err
		}
		c.Classification = models.Classification(class)
		if err := parseInto(nums[:], &c.Price, &c.Extent); err != nil {
			return err
		}
		plot.Comparables = append(plot.Comparables, c)
	}
	return rows.Err()
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid numeric %q: %w", s, err)
	}
	return d, nil
}

// parseInto parses texts[i] into dst[i].
func parseInto(texts []string, dst ...*decimal.Decimal) error {
	if len(texts) != len(dst) {
		return fmt.Errorf("parseInto: %d values for %d targets", len(texts), len(dst))
	}
	for i, s := range texts {
		d, err := parseDecimal(s)
		if err != nil {
			return err
		}
		*dst[i] = d
	}
	return nil
}
