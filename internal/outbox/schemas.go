package outbox

const activityRecordedSchema = `{
  "type": "object",
  "title": "ActivityRecorded",
  "properties": {
    "activity_id": {"type": "string"},
    "phone_number": {"type": "string"},
    "activity_type": {"type": "string"},
    "description": {"type": "string"},
    "duration_min": {"type": "integer"},
    "location": {"type": "string"},
    "confidence": {"type": "number"},
    "recorded_at": {"type": "string", "format": "date-time"},
    "version": {"type": "string"}
  },
  "required": ["activity_id", "phone_number", "activity_type", "description", "confidence", "recorded_at", "version"],
  "additionalProperties": false
}`

const activityStateChangedSchema = `{
  "type": "object",
  "title": "ActivityStateChanged",
  "properties": {
    "activity_id": {"type": "string"},
    "phone_number": {"type": "string"},
    "state": {"type": "string"},
    "occurred_at": {"type": "string", "format": "date-time"},
    "reason": {"type": "string"}
  },
  "required": ["activity_id", "phone_number", "state", "occurred_at"],
  "additionalProperties": false
}`
