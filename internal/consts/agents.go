package consts

const (
	AgentNameScout    = "scout_agent"
	AgentNameAnalyst  = "analyst_agent"
	AgentNamePipeline = "report_pipeline"
)

// RequiredAgents lists the pipeline stages that must be enabled for a
// report run to make sense. Both stages are mandatory: the analyst
// consumes the scout's output.
var RequiredAgents = []string{
	AgentNameScout,
	AgentNameAnalyst,
}
