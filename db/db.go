package db

import (
	"fmt"
	"strconv"

	"github.com/jsphweid/skysheet/constants"
	"github.com/jsphweid/skysheet/model"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

// Enabled reports whether sheet metadata records are configured. Without
// an endpoint the pipeline simply skips them.
func Enabled() bool {
	return constants.GetDynamoEndpoint() != ""
}

func newClient() (*dynamodb.DynamoDB, error) {
	endpoint := constants.GetDynamoEndpoint()
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("create DynamoDB session: %w", err)
	}
	return dynamodb.New(sess), nil
}

// PutSheetMetadata records provenance for a persisted sheet, keyed by its
// filename. Callers treat failures as non-fatal.
func PutSheetMetadata(filename string, m model.SheetMetadata) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	item := map[string]*dynamodb.AttributeValue{
		"PK":            {S: aws.String(filename)},
		"Title":         {S: aws.String(m.Title)},
		"Author":        {S: aws.String(m.Author)},
		"TranscribedBy": {S: aws.String(m.TranscribedBy)},
		"BPM":           {N: aws.String(strconv.Itoa(m.BPM))},
		"NumNotes":      {N: aws.String(strconv.Itoa(m.NumNotes))},
	}

	_, err = client.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(constants.MetadataTable),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put sheet metadata: %w", err)
	}
	return nil
}

// GetSheetMetadatas batch-fetches records for up to 10 sheet filenames.
func GetSheetMetadatas(filenames []string) (map[string]model.SheetMetadata, error) {
	if len(filenames) > 10 {
		return nil, fmt.Errorf("cannot fetch more than 10 records at once, got %v", len(filenames))
	}

	res := make(map[string]model.SheetMetadata)
	if len(filenames) == 0 {
		return res, nil
	}

	client, err := newClient()
	if err != nil {
		return nil, err
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, filename := range filenames {
		keys = append(keys, map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(filename)},
		})
	}

	input := &dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			constants.MetadataTable: {Keys: keys},
		},
	}
	dbres, err := client.BatchGetItem(input)
	if err != nil {
		return nil, fmt.Errorf("batch get sheet metadata: %w", err)
	}

	for _, v := range dbres.Responses[constants.MetadataTable] {
		var m model.SheetMetadata
		if v["Title"] != nil && v["Title"].S != nil {
			m.Title = *v["Title"].S
		}
		if v["Author"] != nil && v["Author"].S != nil {
			m.Author = *v["Author"].S
		}
		if v["TranscribedBy"] != nil && v["TranscribedBy"].S != nil {
			m.TranscribedBy = *v["TranscribedBy"].S
		}
		if v["BPM"] != nil && v["BPM"].N != nil {
			bpm, _ := strconv.Atoi(*v["BPM"].N)
			m.BPM = bpm
		}
		if v["NumNotes"] != nil && v["NumNotes"].N != nil {
			n, _ := strconv.Atoi(*v["NumNotes"].N)
			m.NumNotes = n
		}
		res[*v["PK"].S] = m
	}

	return res, nil
}
