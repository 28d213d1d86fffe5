package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ndewijer/Investment-Simulator-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/model"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/simulation"
)

// SimulationRepository provides data access methods for the simulation table.
// Parameters and the monthly series are stored as JSON text next to the
// scalar summary columns, which are what listings read.
type SimulationRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewSimulationRepository creates a new SimulationRepository with the provided database connection.
func NewSimulationRepository(db *sql.DB) *SimulationRepository {
	return &SimulationRepository{db: db}
}

// WithTx returns a new SimulationRepository scoped to the provided transaction.
func (r *SimulationRepository) WithTx(tx *sql.Tx) *SimulationRepository {
	return &SimulationRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *SimulationRepository) getQuerier() interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertSimulation stores a simulation. The ID and CreatedAt must already be set.
func (r *SimulationRepository) InsertSimulation(ctx context.Context, s model.Simulation) error {
	params, err := json.Marshal(s.Parameters)
	if err != nil {
		return fmt.Errorf("failed to encode parameters: %w", err)
	}
	monthly, err := json.Marshal(s.MonthlyData)
	if err != nil {
		return fmt.Errorf("failed to encode monthly data: %w", err)
	}

	query := `
        INSERT INTO simulation (
            id, user_id, name, type, final_value, total_invested, total_return,
            return_percentage, parameters, monthly_data, created_at
        )
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	_, err = r.getQuerier().ExecContext(ctx, query,
		s.ID,
		nullString(s.UserID),
		s.Name,
		string(s.Type),
		s.FinalValue,
		s.TotalInvested,
		s.TotalReturn,
		s.ReturnPercentage,
		string(params),
		string(monthly),
		FormatTime(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert simulation: %w", err)
	}

	return nil
}

// GetSimulation retrieves a single simulation including its monthly series.
// Returns apperrors.ErrSimulationNotFound if no row matches.
func (r *SimulationRepository) GetSimulation(ctx context.Context, id string) (model.Simulation, error) {
	query := `
        SELECT id, user_id, name, type, final_value, total_invested, total_return,
               return_percentage, parameters, monthly_data, created_at
        FROM simulation
        WHERE id = ?
    `

	var (
		s                   model.Simulation
		userID              sql.NullString
		simType             string
		params, monthlyData string
		createdAt           string
	)

	err := r.getQuerier().QueryRowContext(ctx, query, id).Scan(
		&s.ID,
		&userID,
		&s.Name,
		&simType,
		&s.FinalValue,
		&s.TotalInvested,
		&s.TotalReturn,
		&s.ReturnPercentage,
		&params,
		&monthlyData,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Simulation{}, apperrors.ErrSimulationNotFound
	}
	if err != nil {
		return model.Simulation{}, fmt.Errorf("failed to query simulation: %w", err)
	}

	s.UserID = userID.String
	s.Type = simulation.SimulationType(simType)

	if s.Parameters, err = simulation.DecodeParameters(s.Type, []byte(params)); err != nil {
		return model.Simulation{}, fmt.Errorf("%w: simulation %s: %w", apperrors.ErrDataInconsistency, id, err)
	}
	if err := json.Unmarshal([]byte(monthlyData), &s.MonthlyData); err != nil {
		return model.Simulation{}, fmt.Errorf("%w: simulation %s monthly data: %w", apperrors.ErrDataInconsistency, id, err)
	}
	if s.CreatedAt, err = ParseTime(createdAt); err != nil {
		return model.Simulation{}, fmt.Errorf("%w: simulation %s: %w", apperrors.ErrDataInconsistency, id, err)
	}

	return s, nil
}

// GetSimulations retrieves simulation summaries matching the filter, newest first.
// Returns an empty slice if nothing matches.
func (r *SimulationRepository) GetSimulations(ctx context.Context, filter model.SimulationFilter) ([]model.SimulationSummary, error) {
	query := `
        SELECT id, user_id, name, type, final_value, total_invested, total_return,
               return_percentage, created_at
        FROM simulation
        WHERE 1=1
    `
	var args []any

	if filter.UserID != "" {
		query += " AND user_id = ?"
		args = append(args, filter.UserID)
	}

	if filter.Type != "" {
		query += " AND type = ?"
		args = append(args, string(filter.Type))
	}

	query += " ORDER BY created_at DESC, id"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query simulation table: %w", err)
	}
	defer rows.Close()

	summaries := []model.SimulationSummary{}

	for rows.Next() {
		var (
			s         model.SimulationSummary
			userID    sql.NullString
			simType   string
			createdAt string
		)

		err := rows.Scan(
			&s.ID,
			&userID,
			&s.Name,
			&simType,
			&s.FinalValue,
			&s.TotalInvested,
			&s.TotalReturn,
			&s.ReturnPercentage,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan simulation table results: %w", err)
		}

		s.UserID = userID.String
		s.Type = simulation.SimulationType(simType)
		if s.CreatedAt, err = ParseTime(createdAt); err != nil {
			return nil, fmt.Errorf("%w: simulation %s: %w", apperrors.ErrDataInconsistency, s.ID, err)
		}

		summaries = append(summaries, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating simulation table: %w", err)
	}

	return summaries, nil
}

// DeleteSimulation removes a simulation.
// Returns apperrors.ErrSimulationNotFound if no row was deleted.
func (r *SimulationRepository) DeleteSimulation(ctx context.Context, id string) error {
	query := `DELETE FROM simulation WHERE id = ?`

	result, err := r.getQuerier().ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete simulation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrSimulationNotFound
	}

	return nil
}

// DeleteSimulationsOlderThan removes every simulation created before cutoff
// and returns the IDs it removed.
func (r *SimulationRepository) DeleteSimulationsOlderThan(ctx context.Context, cutoff time.Time) ([]string, error) {
	rows, err := r.getQuerier().QueryContext(ctx,
		`DELETE FROM simulation WHERE created_at < ? RETURNING id`,
		FormatTime(cutoff),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to purge simulations: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan purged simulation id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purged simulations: %w", err)
	}

	return ids, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
