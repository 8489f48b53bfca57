package validators

import "go.mongodb.org/mongo-driver/bson"

var ScheduleValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"studio_id",
			"weekly_hours",
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

			"weekly_hours": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"maxItems": 7,
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"weekday"},
					"properties": bson.M{
						"weekday": bson.M{
							"bsonType": "int",
							"minimum":  1,
							"maximum":  7,
						},
						"open": bson.M{
							"bsonType": "bool",
						},
						"opens_at": bson.M{
							"bsonType": "string",
						},
						"closes_at": bson.M{
							"bsonType": "string",
						},
					},
				},
			},

			"lunch_break": bson.M{
				"bsonType": "object",
				"properties": bson.M{
					"enabled": bson.M{
						"bsonType": "bool",
					},
					"start": bson.M{
						"bsonType": "string",
					},
					"end": bson.M{
						"bsonType": "string",
					},
				},
			},

			"time_off": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"start_date", "end_date"},
					"properties": bson.M{
						"start_date": bson.M{
							"bsonType": "string",
						},
						"end_date": bson.M{
							"bsonType": "string",
						},
					},
				},
			},

			"time_zone": bson.M{
				"bsonType": "string",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
