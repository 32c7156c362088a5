package db

import (
	"context"
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/olivere/elastic/v7"

	"launderette-finder/src/types"
)

// LoadSeed bulk-loads launderettes from a tab-separated seed file.
// Columns: id, name, address, city, phone, lon, lat, features (|-joined),
// isPremium. Malformed rows are skipped.
func (es *ElasticStore) LoadSeed(pathData string) {
	listings, err := es.readCSV(pathData)
	if err != nil {
		log.Printf("Error reading seed file %s: %s", pathData, err)
		return
	}

	if err := es.saveListings(listings); err != nil {
		log.Printf("Error saving seed listings: %s", err)
	}
}

func (es *ElasticStore) readCSV(filePath string) ([]types.Listing, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = '\t'
	// Rows may be truncated; length is checked per row below.
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var listings []types.Listing
	var mutex sync.Mutex
	var wg sync.WaitGroup

	for i, record := range records {
		if i == 0 {
			continue
		}
		if len(record) < 9 {
			continue
		}

		wg.Add(1)
		go func(record []string) {
			defer wg.Done()
			longitude, _ := strconv.ParseFloat(record[5], 64)
			latitude, _ := strconv.ParseFloat(record[6], 64)
			isPremium, _ := strconv.ParseBool(record[8])

			features := []string{}
			if record[7] != "" {
				features = strings.Split(record[7], "|")
			}

			listing := types.Listing{
				ID:      record[0],
				Name:    record[1],
				Address: record[2],
				City:    record[3],
				Phone:   record[4],
				Location: types.GeoPoint{
					Lat: latitude,
					Lon: longitude,
				},
				Features:  features,
				IsPremium: isPremium,
			}
			listing.Normalize()

			mutex.Lock()
			listings = append(listings, listing)
			mutex.Unlock()
		}(record)
	}

	wg.Wait()
	return listings, nil
}

func (es *ElasticStore) saveListings(listings []types.Listing) error {
	ctx := context.Background()
	bulkRequest := es.Client.Bulk()

	for _, listing := range listings {
		req := elastic.NewBulkIndexRequest().Index(IndexLaunderettes).Id(listing.ID).Doc(listing)
		bulkRequest = bulkRequest.Add(req)
	}

	bulkResponse, err := bulkRequest.Do(ctx)
	if err != nil {
		log.Printf("Error executing bulk request: %s", err)
		return err
	}

	if bulkResponse != nil {
		for _, item := range bulkResponse.Items {
			for _, op := range item {
				if op.Error != nil {
					log.Printf("Failed to execute operation: %s", op.Error.Reason)
				}
			}
		}
	}

	return nil
}
