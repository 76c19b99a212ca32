// internal/workers/analysis/culture/config.go
package culture

// TaskType is the Zeebe job type this worker subscribes to. It is also
// the key for this worker's block in the workers config map.
const TaskType = "analyze-culture"
