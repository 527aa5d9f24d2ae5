package utils

import (
	"log"
	"os"
)

var MONGO_URI = ""
var AWS_REGION = ""
var AWS_BUCKET_NAME = ""
var OPENAI_API_KEY = ""

// LoadEnvs loads environment variables from a .env file
func LoadEnvs() error {
	MONGO_URI = os.Getenv("MONGO_URI")
	if MONGO_URI == "" {
		log.Fatal("MONGO_URI not found in .env file")
	}

	AWS_REGION = os.Getenv("AWS_REGION")
	if AWS_REGION == "" {
		log.Println("AWS_REGION not set, asset upload and PDF import disabled")
	}

	AWS_BUCKET_NAME = os.Getenv("AWS_BUCKET_NAME")
	if AWS_BUCKET_NAME == "" {
		log.Println("AWS_BUCKET_NAME not set, asset upload and PDF import disabled")
	}

	OPENAI_API_KEY = os.Getenv("OPENAI_API_KEY")
	if OPENAI_API_KEY == "" {
		log.Println("OPENAI_API_KEY not set, component generation disabled")
	}

	return nil
}
