// internal/workers/analysis/engagement/config.go
package engagement

// TaskType is the Zeebe job type this worker subscribes to. It is also
// the key for this worker's block in the workers config map.
const TaskType = "analyze-engagement"
