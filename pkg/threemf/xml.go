package threemf

import "encoding/xml"

// Namespace is the 3MF core specification namespace
const Namespace = "http://schemas.microsoft.com/3dmanufacturing/core/2015/02"

// xmlModel mirrors the parts of a model part the engine reads. Attribute
// values stay strings so one bad number only fails its own object.
type xmlModel struct {
	XMLName   xml.Name     `xml:"model"`
	Unit      string       `xml:"unit,attr"`
	Resources xmlResources `xml:"resources"`
	Build     xmlBuild     `xml:"build"`
}

type xmlResources struct {
	Objects []xmlObject `xml:"object"`
}

type xmlObject struct {
	ID         string         `xml:"id,attr"`
	Name       string         `xml:"name,attr"`
	Type       string         `xml:"type,attr"`
	Mesh       *xmlMesh       `xml:"mesh"`
	Components *xmlComponents `xml:"components"`
}

type xmlMesh struct {
	Vertices  []xmlVertex   `xml:"vertices>vertex"`
	Triangles []xmlTriangle `xml:"triangles>triangle"`
}

type xmlVertex struct {
	X string `xml:"x,attr"`
	Y string `xml:"y,attr"`
	Z string `xml:"z,attr"`
}

type xmlTriangle struct {
	V1 string `xml:"v1,attr"`
	V2 string `xml:"v2,attr"`
	V3 string `xml:"v3,attr"`
}

type xmlComponents struct {
	Component []xmlComponent `xml:"component"`
}

type xmlComponent struct {
	ObjectID  string `xml:"objectid,attr"`
	Transform string `xml:"transform,attr"`
	// Path is the production extension reference to another model part
	Path string `xml:"path,attr"`
}

type xmlBuild struct {
	Items []xmlItem `xml:"item"`
}

type xmlItem struct {
	ObjectID  string `xml:"objectid,attr"`
	Transform string `xml:"transform,attr"`
	Path      string `xml:"path,attr"`
}
