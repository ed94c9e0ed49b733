package catalog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modhome/pkg/models"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []models.Product{
		{ID: 1, Name: "Folding House, 20ft", Price: "$500", Image: "img1.jpg", Category: "Folding", Features: []string{"Steel", "Insulated"}},
	}))
	assert.Equal(t,
		"id,name,description,price,image,category,features\n"+
			"1,\"Folding House, 20ft\",,$500,img1.jpg,Folding,Steel|Insulated\n",
		buf.String())
}

func TestReadRawCSV(t *testing.T) {
	in := "Price,Name,Image,Features\n" +
		"$500, Folding House ,img1.jpg,Steel|Insulated\n" +
		"\n" +
		"$300,Capsule Pod,,\n"

	got, err := ReadRawCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Folding House", models.Value(got[0].Name))
	assert.Equal(t, []string{"Steel", "Insulated"}, got[0].Features)
	assert.Nil(t, got[0].Description, "no description column")
	assert.Nil(t, got[0].ID)

	require.NotNil(t, got[1].Image)
	assert.Equal(t, "", *got[1].Image)
	assert.Nil(t, got[1].Features)
}

func TestReadRawCSV_BadID(t *testing.T) {
	_, err := ReadRawCSV(strings.NewReader("id,name\nabc,x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}
