package lightmap

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx"
	"golang.org/x/exp/maps"
)

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

type StripGeometryEntry struct {
	Orientation string  `db:"Orientation"`
	Width       float64 `db:"Width"`
	Height      float64 `db:"Height"`
	XOffset     float64 `db:"XOffset"`
	YOffset     float64 `db:"YOffset"`
}

// LoadStripGeometry reads the strip geometry valid for a run from the
// calibration database and installs it as the active geometry. Orientations
// missing from the table keep their builtin values.
func LoadStripGeometry(db *sqlx.DB, runNumber int) error {
	query := "SELECT Orientation, Width, Height, XOffset, YOffset FROM StripGeometry WHERE MinRun <= %d and MaxRun >= %d"
	query = fmt.Sprintf(query, runNumber, runNumber)

	if configuration.Verbosity > 0 {
		logger.Info("Strip geometry read from DB", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s", query)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(query)
	if err != nil {
		return fmt.Errorf("error querying database: %w", err)
	}

	geometries := make(map[string]StripGeometry)
	for rows.Next() {
		result := StripGeometryEntry{}
		err := rows.StructScan(&result)
		if err != nil {
			return fmt.Errorf("error scanning DB row: %w", err)
		}
		geometries[result.Orientation] = StripGeometry{
			Width:   result.Width,
			Height:  result.Height,
			XOffset: result.XOffset,
			YOffset: result.YOffset,
		}
	}

	x := xStripGeometry
	y := yStripGeometry
	if geometry, ok := geometries["X"]; ok {
		x = geometry
	}
	if geometry, ok := geometries["Y"]; ok {
		y = geometry
	}
	SetStripGeometry(x, y)

	if configuration.Verbosity > 1 {
		message := fmt.Sprintf("Geometry overrides found for orientations: %v", maps.Keys(geometries))
		logger.Info(message, "database")
	}
	return nil
}
