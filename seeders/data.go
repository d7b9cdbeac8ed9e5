package seeders

type assetStatusSeed struct {
	Name string
}

var assetStatusesData = []assetStatusSeed{
	{Name: "In-service"},
	{Name: "In-stock"},
	{Name: "In-repair"},
	{Name: "Retired"},
}

type assetModelSeed struct {
	Make  string
	Model string
	Type  string
}

var assetModelsData = []assetModelSeed{
	{Make: "Apple", Model: "MacBook Pro 14", Type: "Laptop"},
	{Make: "Dell", Model: "Latitude 5440", Type: "Laptop"},
	{Make: "Dell", Model: "UltraSharp U2723QE", Type: "Monitor"},
	{Make: "HP", Model: "LaserJet Pro M404", Type: "Printer"},
	{Make: "Cisco", Model: "Catalyst 9300", Type: "Switch"},
}

var locationsData = []string{
	"Head Office",
	"Warehouse",
	"Branch Office",
}
