package validators

import "go.mongodb.org/mongo-driver/bson"

var OfferingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"studio_id",
			"name",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"studio_id": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 60,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"duration_min": bson.M{
				"bsonType": "int",
				"minimum":  0,
				"maximum":  480,
			},

			"price_cents": bson.M{
				"bsonType": "long",
				"minimum":  0,
			},

			"deposit_cents": bson.M{
				"bsonType": "long",
				"minimum":  0,
			},

			"active": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
