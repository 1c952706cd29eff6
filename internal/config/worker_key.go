package config

type WorkerKeyStruct struct {
	TemplateUsageQueue string
}

var WorkerKey = &WorkerKeyStruct{
	TemplateUsageQueue: "template_usage_queue",
}
