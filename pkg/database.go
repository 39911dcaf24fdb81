package pmtconfig

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
)

var sensorsMap SensorMapping

// SensorMapping relates electronics channel IDs with the offline channel
// IDs used downstream.
type SensorMapping struct {
	ToElecID   map[uint16]uint16
	ToSensorID map[uint16]uint16
}

type SensorMappingEntry struct {
	ElecID   int `db:"ElecID"`
	SensorID int `db:"SensorID"`
}

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

func LoadDatabase(dbConn *sqlx.DB, runNumber int) error {
	var err error
	sensorsMap, err = GetChannelMappingFromDB(dbConn, runNumber)
	if err != nil {
		errMessage := fmt.Errorf("error getting channel mapping from database: %w", err)
		logger.Error(errMessage.Error())
		return errMessage
	}
	return nil
}

func ChannelMapping() SensorMapping {
	return sensorsMap
}

func GetChannelMappingFromDB(db *sqlx.DB, runNumber int) (SensorMapping, error) {
	query := "SELECT ElecID, SensorID FROM ChannelMapping WHERE MinRun <= %d and MaxRun >= %d ORDER BY SensorID"
	query = fmt.Sprintf(query, runNumber, runNumber)

	mapping := SensorMapping{
		ToElecID:   make(map[uint16]uint16),
		ToSensorID: make(map[uint16]uint16),
	}

	if configuration.Verbosity > 0 {
		logger.Info("Channel mapping read from DB", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s", query)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(query)
	if err != nil {
		errMessage := fmt.Errorf("error querying database: %w", err)
		return mapping, errMessage
	}

	for rows.Next() {
		result := SensorMappingEntry{}
		err := rows.StructScan(&result)
		if err != nil {
			errMessage := fmt.Errorf("error scanning DB row: %w", err)
			return mapping, errMessage
		}
		mapping.ToElecID[uint16(result.SensorID)] = uint16(result.ElecID)
		mapping.ToSensorID[uint16(result.ElecID)] = uint16(result.SensorID)
	}
	return mapping, nil
}

// UnknownChannels returns the offline channel IDs in settings that do not
// appear in the database channel mapping.
func UnknownChannels(settings []ChannelRecord, mapping SensorMapping) []int {
	unknown := make([]int, 0)
	for _, record := range settings {
		if _, ok := mapping.ToElecID[uint16(record.Channel)]; !ok {
			unknown = append(unknown, record.Channel)
		}
	}
	return unknown
}
