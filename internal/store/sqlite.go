package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/driftlab/genograph/internal/models"
)

// DirName is the genograph state directory created under a project root.
const DirName = ".genograph"

// SQLiteStore implements GeneStore using SQLite for persistence.
// It stores genes and strains in a SQLite database and mirrors genes to JSONL
// on Sync().
type SQLiteStore struct {
	mu        sync.RWMutex
	db        *sql.DB
	dir       string
	dbPath    string
	genesFile string
}

// NewSQLiteStore creates a SQLiteStore rooted at projectRoot.
// The database lives at .genograph/genograph.db.
func NewSQLiteStore(projectRoot string) (*SQLiteStore, error) {
	dir := filepath.Join(projectRoot, DirName)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", DirName, err)
	}

	dbPath := filepath.Join(dir, "genograph.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{
		db:        db,
		dir:       dir,
		dbPath:    dbPath,
		genesFile: filepath.Join(dir, "genes.jsonl"),
	}, nil
}

// PutGene inserts or replaces a gene definition.
func (s *SQLiteStore) PutGene(ctx context.Context, gene models.Gene) error {
	if err := gene.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	requires, err := json.Marshal(gene.Requires)
	if err != nil {
		return fmt.Errorf("marshaling requires: %w", err)
	}

	// Keep the original position on replace so catalog order survives reloads.
	var position int
	err = s.db.QueryRowContext(ctx, `SELECT position FROM genes WHERE id = ?`, gene.ID).Scan(&position)
	if err == sql.ErrNoRows {
		if err := s.db.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(position), -1) + 1 FROM genes`).Scan(&position); err != nil {
			return fmt.Errorf("computing gene position: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("looking up gene position: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO genes (id, name, resistance, requires, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		gene.ID, gene.Name, gene.Resistance, string(requires), position,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting gene: %w", err)
	}
	return nil
}

// GetGene retrieves a gene by ID. Returns nil if not found.
func (s *SQLiteStore) GetGene(ctx context.Context, id string) (*models.Gene, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, resistance, requires FROM genes WHERE id = ?`, id)

	gene, err := scanGene(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return gene, nil
}

// ListGenes returns all genes in catalog insertion order.
func (s *SQLiteStore) ListGenes(ctx context.Context) ([]models.Gene, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, resistance, requires FROM genes ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying genes: %w", err)
	}
	defer rows.Close()

	var genes []models.Gene
	for rows.Next() {
		gene, err := scanGene(rows)
		if err != nil {
			return nil, err
		}
		genes = append(genes, *gene)
	}
	return genes, rows.Err()
}

// PutStrain inserts or replaces a strain and its genome.
func (s *SQLiteStore) PutStrain(ctx context.Context, strain *models.Strain) error {
	if strain == nil || strain.ID == "" {
		return fmt.Errorf("strain ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	createdAt := strain.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	updatedAt := strain.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO strains (id, resistance, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		strain.ID, strain.Resistance,
		createdAt.Format(time.RFC3339), updatedAt.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("inserting strain: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM strain_genome WHERE strain_id = ?`, strain.ID); err != nil {
		return fmt.Errorf("clearing genome: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i, geneID := range strain.Acquisitions {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO strain_genome (strain_id, gene_id, position, acquired_at)
			VALUES (?, ?, ?, ?)`,
			strain.ID, geneID, i, now); err != nil {
			return fmt.Errorf("inserting genome entry: %w", err)
		}
	}

	return tx.Commit()
}

// GetStrain retrieves a strain and its genome. Returns nil if not found.
func (s *SQLiteStore) GetStrain(ctx context.Context, id string) (*models.Strain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getStrainLocked(ctx, id)
}

func (s *SQLiteStore) getStrainLocked(ctx context.Context, id string) (*models.Strain, error) {
	var strain models.Strain
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, resistance, created_at, updated_at FROM strains WHERE id = ?`, id).
		Scan(&strain.ID, &strain.Resistance, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying strain: %w", err)
	}

	strain.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	strain.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	strain.Genome = models.NewGenome()

	rows, err := s.db.QueryContext(ctx,
		`SELECT gene_id FROM strain_genome WHERE strain_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("querying genome: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var geneID string
		if err := rows.Scan(&geneID); err != nil {
			return nil, fmt.Errorf("scanning genome entry: %w", err)
		}
		strain.Genome.Add(geneID)
		strain.Acquisitions = append(strain.Acquisitions, geneID)
	}
	return &strain, rows.Err()
}

// ListStrains returns all strains with their genomes.
func (s *SQLiteStore) ListStrains(ctx context.Context) ([]models.Strain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id FROM strains ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("querying strains: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	strains := make([]models.Strain, 0, len(ids))
	for _, id := range ids {
		strain, err := s.getStrainLocked(ctx, id)
		if err != nil {
			return nil, err
		}
		if strain != nil {
			strains = append(strains, *strain)
		}
	}
	return strains, nil
}

// AcquireGene appends a gene to the strain's genome and updates its
// resistance. Acquiring an already-held gene only refreshes the score.
func (s *SQLiteStore) AcquireGene(ctx context.Context, strainID, geneID string, resistance float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM strains WHERE id = ?`, strainID).Scan(&exists); err != nil {
		return fmt.Errorf("checking strain: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("%w: %s", ErrStrainNotFound, strainID)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO strain_genome (strain_id, gene_id, position, acquired_at)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM strain_genome WHERE strain_id = ?), ?)`,
		strainID, geneID, strainID, now); err != nil {
		return fmt.Errorf("inserting genome entry: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE strains SET resistance = ?, updated_at = ? WHERE id = ?`,
		resistance, now, strainID); err != nil {
		return fmt.Errorf("updating strain: %w", err)
	}

	return tx.Commit()
}

// Sync exports the gene catalog to genes.jsonl alongside the database.
func (s *SQLiteStore) Sync(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, resistance, requires FROM genes ORDER BY position`)
	if err != nil {
		return fmt.Errorf("querying genes for export: %w", err)
	}
	defer rows.Close()

	tmp := s.genesFile + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}

	enc := json.NewEncoder(f)
	for rows.Next() {
		gene, err := scanGene(rows)
		if err != nil {
			f.Close()
			os.Remove(tmp)
			return err
		}
		if err := enc.Encode(gene); err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("encoding gene: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, s.genesFile)
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanGene.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanGene(row rowScanner) (*models.Gene, error) {
	var gene models.Gene
	var name sql.NullString
	var requires sql.NullString

	if err := row.Scan(&gene.ID, &name, &gene.Resistance, &requires); err != nil {
		return nil, err
	}
	gene.Name = name.String

	if requires.Valid && requires.String != "" && requires.String != "null" {
		if err := json.Unmarshal([]byte(requires.String), &gene.Requires); err != nil {
			return nil, fmt.Errorf("unmarshaling requires for %s: %w", gene.ID, err)
		}
	}
	return &gene, nil
}
