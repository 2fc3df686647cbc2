package config

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

// Static job table. Jobs in other packages self-register through
// cron.Register instead of being listed here.
var CronJobs = map[string]CronJob{
	// Add more jobs here
}
